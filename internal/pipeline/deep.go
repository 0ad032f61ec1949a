package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/query"
	"github.com/datavex/leadforge/internal/resilience"
	"github.com/datavex/leadforge/internal/synth"
	"github.com/datavex/leadforge/pkg/jina"
)

// deepNewsResults caps how many search results feed each news angle.
const deepNewsResults = 5

// Deep runs the single-target flow: fetch homepage recon plus fiscal and
// tech news in parallel, then synthesize a full dossier with verdict and
// outreach strategy. Partial fetch failures are tolerated; only a total
// intelligence blackout fails the run.
func (o *Orchestrator) Deep(ctx context.Context, domain string, cat model.ServiceCategory) (*model.DeepResult, error) {
	r := o.newRun("deep")

	domain = strings.ToLower(strings.TrimSpace(domain))
	if !query.ValidDomain(domain) {
		return nil, r.fail(eris.Wrapf(ErrInvalidInput, "pipeline: invalid domain %q", domain))
	}

	r.transition(StateFetching)
	r.trace.Add("Recon Agent: Gathering intelligence for %s.", domain)

	intel := synth.Intel{Domain: domain, Category: cat}

	var reconErr, fiscalErr, techErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		title, text, err := o.recon(gctx, domain)
		if err != nil {
			reconErr = err
			return nil
		}
		intel.ReconTitle = title
		intel.ReconText = text
		intel.Reachable = true
		return nil
	})
	g.Go(func() error {
		hits, err := o.search(gctx, query.Fiscal(domain), deepNewsResults)
		if err != nil {
			fiscalErr = err
			return nil
		}
		intel.FiscalNews = digest(hits)
		return nil
	})
	g.Go(func() error {
		hits, err := o.search(gctx, query.Tech(domain), deepNewsResults)
		if err != nil {
			techErr = err
			return nil
		}
		intel.TechNews = digest(hits)
		return nil
	})
	_ = g.Wait()

	if reconErr != nil {
		zap.L().Warn("pipeline: homepage recon failed",
			zap.String("domain", domain), zap.Error(reconErr))
		r.trace.Add("Recon Agent: Homepage unreachable. Proceeding on search signals only.")
	}
	if fiscalErr != nil || techErr != nil {
		zap.L().Warn("pipeline: news search partially failed",
			zap.String("domain", domain),
			zap.NamedError("fiscal", fiscalErr),
			zap.NamedError("tech", techErr),
		)
	}

	if reconErr != nil && fiscalErr != nil && techErr != nil {
		return nil, r.fail(eris.Wrapf(ErrProvider, "pipeline: all intelligence sources failed for %s", domain))
	}
	r.trace.Add("Recon Agent: Intelligence gathered (site reachable: %t).", intel.Reachable)

	r.transition(StateAnalyzing)
	result, err := synth.Dossier(ctx, o.llmClient(), o.cfg.Anthropic, intel, r.trace)
	if err != nil {
		if eris.Is(err, synth.ErrSchema) {
			return nil, r.fail(eris.Wrap(err, "pipeline: deep analysis"))
		}
		return nil, r.fail(providerErr(err, "pipeline: deep analysis"))
	}

	result.AgentTrace = r.trace.Events()
	r.transition(StateDone)
	zap.L().Info("pipeline: deep analysis complete",
		zap.String("run_id", r.trace.RunID()),
		zap.String("domain", domain),
		zap.Int("score", result.Verdict.Score),
	)

	return result, nil
}

// recon fetches and truncates the homepage through the Jina reader.
func (o *Orchestrator) recon(ctx context.Context, domain string) (title, text string, err error) {
	rctx, cancel := o.readCtx(ctx)
	defer cancel()

	resp, err := resilience.Do(rctx, o.jinaBreaker, func(ctx context.Context) (*jina.ReadResponse, error) {
		resp, err := o.jina.Read(ctx, "https://"+domain)
		var apiErr *jina.APIError
		if errors.As(err, &apiErr) && resilience.IsTransientHTTPStatus(apiErr.StatusCode) {
			return nil, resilience.NewTransientError(err, apiErr.StatusCode)
		}
		return resp, err
	})
	if err != nil {
		return "", "", err
	}

	text = resp.Data.Content
	if limit := o.cfg.Pipeline.ReconCharLimit; limit > 0 && len(text) > limit {
		text = text[:limit]
	}
	return resp.Data.Title, text, nil
}

// digest flattens search hits into prompt-ready bullet lines.
func digest(hits []model.SearchHit) string {
	var sb strings.Builder
	for _, h := range hits {
		sb.WriteString("- ")
		sb.WriteString(h.Title)
		if h.Snippet != "" {
			sb.WriteString(": ")
			sb.WriteString(h.Snippet)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
