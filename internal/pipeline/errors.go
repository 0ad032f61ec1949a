package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/datavex/leadforge/internal/resilience"
	"github.com/datavex/leadforge/internal/synth"
)

// Failure classes for callers (the CLI exit code and the HTTP status
// mapping both key off these).
var (
	// ErrInvalidInput marks rejected caller input: unknown category,
	// malformed domain, empty request fields.
	ErrInvalidInput = eris.New("pipeline: invalid input")

	// ErrProvider marks an upstream provider failure after which the run
	// cannot proceed.
	ErrProvider = eris.New("pipeline: provider failure")

	// ErrSchema marks a model response that stayed malformed through the
	// corrective retry.
	ErrSchema = synth.ErrSchema
)

// providerErr classifies an upstream failure. A tripped breaker keeps its
// own identity so callers can map it to "come back later" instead of a
// generic provider error.
func providerErr(err error, msg string) error {
	if eris.Is(err, resilience.ErrBreakerOpen) {
		return eris.Wrap(err, msg)
	}
	return eris.Wrapf(ErrProvider, "%s: %v", msg, err)
}

// TraceError carries the agent trace accumulated before a run failed, so
// callers can surface partial progress alongside the error.
type TraceError struct {
	Err   error
	Trace []string
}

func (e *TraceError) Error() string {
	return e.Err.Error()
}

func (e *TraceError) Unwrap() error {
	return e.Err
}
