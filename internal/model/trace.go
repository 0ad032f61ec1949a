package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Trace accumulates human-readable progress events for one pipeline run.
// Events are append-only and surfaced verbatim to the caller; each run gets
// a fresh Trace, so no locking is needed.
type Trace struct {
	runID  string
	events []string
}

// NewTrace creates an empty trace with a fresh run ID.
func NewTrace() *Trace {
	return &Trace{runID: uuid.NewString()}
}

// RunID returns the unique identifier for this run.
func (t *Trace) RunID() string {
	return t.runID
}

// Add appends a formatted event to the trace.
func (t *Trace) Add(format string, args ...any) {
	t.events = append(t.events, fmt.Sprintf(format, args...))
}

// Events returns the accumulated events in order.
func (t *Trace) Events() []string {
	return t.events
}
