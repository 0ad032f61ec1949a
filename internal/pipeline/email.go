package pipeline

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/synth"
)

// Email drafts a cold outreach email for a previously qualified lead. The
// call is stateless: repeated requests draft independently.
func (o *Orchestrator) Email(ctx context.Context, req model.EmailRequest) (*model.EmailDraft, error) {
	r := o.newRun("email")

	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.WhyWeHelp) == "" {
		return nil, r.fail(eris.Wrap(ErrInvalidInput, "pipeline: company_name and why_we_help are required"))
	}

	r.transition(StateSynthesizing)
	r.trace.Add("Outreach Agent: Drafting email for %s.", req.CompanyName)

	draft, err := synth.DraftEmail(ctx, o.llmClient(), o.cfg.Anthropic, req, r.trace)
	if err != nil {
		if eris.Is(err, synth.ErrSchema) {
			return nil, r.fail(eris.Wrap(err, "pipeline: email draft"))
		}
		return nil, r.fail(providerErr(err, "pipeline: email draft"))
	}

	r.transition(StateDone)
	zap.L().Info("pipeline: email drafted",
		zap.String("run_id", r.trace.RunID()),
		zap.String("company", req.CompanyName),
	)

	return draft, nil
}
