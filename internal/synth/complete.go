// Package synth turns filtered candidates into structured leads, dossiers
// and outreach copy through a strict-schema contract with the language
// model.
package synth

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
)

// ErrSchema marks a response that failed schema validation even after the
// corrective retry.
var ErrSchema = eris.New("synth: response failed schema validation")

// lowTemp keeps structured-output generation near-deterministic.
var lowTemp = 0.2

// correctiveInstruction is appended as a follow-up turn when the first
// response fails to parse or validate.
const correctiveInstruction = `Your previous response did not conform to the required JSON schema. ` +
	`Respond again with ONLY a single valid JSON object matching the schema exactly. ` +
	`No markdown fences, no commentary, no additional keys.`

// completeJSON issues one message request and parses the response with
// parse. On parse failure it retries exactly once, feeding the bad response
// back with a corrective instruction; a second failure returns ErrSchema.
// Provider errors are returned as-is on either attempt.
func completeJSON(ctx context.Context, client anthropic.Client, req anthropic.MessageRequest, phase string, trace *model.Trace, parse func(text string) error) error {
	resp, err := client.CreateMessage(ctx, req)
	if err != nil {
		return eris.Wrapf(err, "synth: %s", phase)
	}
	resp.Usage.LogCost(req.Model, phase)

	text := ExtractText(resp)
	firstErr := parse(CleanJSON(text))
	if firstErr == nil {
		return nil
	}

	zap.L().Warn("synth: response failed validation, issuing corrective retry",
		zap.String("phase", phase),
		zap.Error(firstErr),
	)
	trace.Add("Synthesis Agent: Response failed schema validation. Issuing corrective retry.")

	retryReq := req
	retryReq.Messages = append(append([]anthropic.Message{}, req.Messages...),
		anthropic.Message{Role: "assistant", Content: text},
		anthropic.Message{Role: "user", Content: correctiveInstruction},
	)

	resp, err = client.CreateMessage(ctx, retryReq)
	if err != nil {
		return eris.Wrapf(err, "synth: %s retry", phase)
	}
	resp.Usage.LogCost(req.Model, phase+"_retry")

	if retryErr := parse(CleanJSON(ExtractText(resp))); retryErr != nil {
		zap.L().Warn("synth: corrective retry also failed validation",
			zap.String("phase", phase),
			zap.Error(retryErr),
		)
		return eris.Wrapf(ErrSchema, "synth: %s", phase)
	}

	return nil
}
