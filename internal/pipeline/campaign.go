package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/normalize"
	"github.com/datavex/leadforge/internal/query"
	"github.com/datavex/leadforge/internal/synth"
)

// Campaign runs the batch discovery flow for one service category:
// scout the web for need signals, filter out enterprises, synthesize
// qualified leads. The returned result always carries the full agent
// trace; on error the trace is surfaced through the error path by the
// caller-facing layers instead.
func (o *Orchestrator) Campaign(ctx context.Context, cat model.ServiceCategory) (*model.CampaignResult, error) {
	r := o.newRun("campaign")

	dork, err := query.Campaign(cat)
	if err != nil {
		return nil, r.fail(eris.Wrapf(ErrInvalidInput, "pipeline: %v", err))
	}

	r.transition(StateScouting)
	r.trace.Add("Scout Agent: Executing dork query for '%s'.", cat)

	hits, err := o.search(ctx, dork, normalize.MaxHits)
	if err != nil {
		return nil, r.fail(providerErr(err, "pipeline: campaign search"))
	}
	r.trace.Add("Scout Agent: Received %d raw search results.", len(hits))

	if len(hits) == 0 {
		// Nothing to qualify; the model is never consulted.
		r.trace.Add("Scout Agent: No results matched the need signals. Campaign complete.")
		r.transition(StateDone)
		return &model.CampaignResult{Leads: []model.Lead{}, AgentTrace: r.trace.Events()}, nil
	}

	r.transition(StateFiltering)
	candidates := normalize.Candidates(hits)
	r.trace.Add("Filter Agent: Normalized to %d unique domains.", len(candidates))

	survivors := o.guard.Filter(candidates)
	r.trace.Add("Filter Agent: %d candidates survived the enterprise guard.", len(survivors))

	r.transition(StateSynthesizing)
	leads, err := synth.Leads(ctx, o.llmClient(), o.cfg.Anthropic, cat, survivors, r.trace)
	if err != nil {
		return nil, r.fail(providerErr(err, "pipeline: lead synthesis"))
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	r.trace.Add("Synthesis Agent: %d qualified leads found.", len(leads))

	r.transition(StateDone)
	zap.L().Info("pipeline: campaign complete",
		zap.String("run_id", r.trace.RunID()),
		zap.String("category", string(cat)),
		zap.Int("leads", len(leads)),
	)

	return &model.CampaignResult{Leads: leads, AgentTrace: r.trace.Events()}, nil
}
