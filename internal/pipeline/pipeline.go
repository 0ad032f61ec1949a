// Package pipeline orchestrates the lead discovery flows: campaign
// scouting, single-domain deep analysis and outreach drafting. Each run is
// an explicit state machine; every external call goes through a per-provider
// circuit breaker and a bounded context.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/internal/guard"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/resilience"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/jina"
	"github.com/datavex/leadforge/pkg/serp"
)

// State is a pipeline run state. Runs move strictly forward; StateFailed
// and StateDone are terminal.
type State string

const (
	StateInit         State = "INIT"
	StateScouting     State = "SCOUTING"
	StateFiltering    State = "FILTERING"
	StateSynthesizing State = "SYNTHESIZING"
	StateFetching     State = "FETCHING"
	StateAnalyzing    State = "ANALYZING"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
)

// Orchestrator wires the providers and the guard into runnable flows. It is
// stateless between runs and safe for concurrent use.
type Orchestrator struct {
	cfg   *config.Config
	serp  serp.Client
	jina  jina.Client
	llm   anthropic.Client
	guard *guard.Guard

	serpBreaker *resilience.Breaker
	jinaBreaker *resilience.Breaker
	llmBreaker  *resilience.Breaker
}

// New assembles an orchestrator from already-constructed providers.
func New(cfg *config.Config, serpClient serp.Client, jinaClient jina.Client, llmClient anthropic.Client, g *guard.Guard) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		serp:        serpClient,
		jina:        jinaClient,
		llm:         llmClient,
		guard:       g,
		serpBreaker: resilience.NewBreaker("serp", 5, 30*time.Second),
		jinaBreaker: resilience.NewBreaker("jina", 5, 30*time.Second),
		llmBreaker:  resilience.NewBreaker("anthropic", 3, 60*time.Second),
	}
}

// run tracks one run's state for logging.
type run struct {
	trace *model.Trace
	flow  string
	state State
}

func (o *Orchestrator) newRun(flow string) *run {
	return &run{trace: model.NewTrace(), flow: flow, state: StateInit}
}

// fail moves the run to its terminal failure state and attaches the trace
// accumulated so far.
func (r *run) fail(err error) error {
	r.transition(StateFailed)
	return &TraceError{Err: err, Trace: r.trace.Events()}
}

func (r *run) transition(to State) {
	zap.L().Info("pipeline: state transition",
		zap.String("run_id", r.trace.RunID()),
		zap.String("flow", r.flow),
		zap.String("from", string(r.state)),
		zap.String("to", string(to)),
	)
	r.state = to
}

// searchCtx bounds a SerpAPI call.
func (o *Orchestrator) searchCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(o.cfg.Serp.TimeoutSecs)*time.Second)
}

// readCtx bounds a Jina Reader call.
func (o *Orchestrator) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(o.cfg.Jina.TimeoutSecs)*time.Second)
}

// llmCtx bounds a model call; the corrective retry happens inside, so the
// budget covers up to two generations.
func (o *Orchestrator) llmCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(o.cfg.Anthropic.TimeoutSecs)*time.Second)
}

// guardedLLM routes model calls through the anthropic breaker and the
// per-call timeout. Synthesis code takes a plain client and stays unaware
// of the breaker.
type guardedLLM struct {
	o *Orchestrator
}

func (g guardedLLM) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	lctx, cancel := g.o.llmCtx(ctx)
	defer cancel()
	return resilience.Do(lctx, g.o.llmBreaker, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		resp, err := g.o.llm.CreateMessage(ctx, req)
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && resilience.IsTransientHTTPStatus(apiErr.StatusCode) {
			return nil, resilience.NewTransientError(err, apiErr.StatusCode)
		}
		return resp, err
	})
}

func (o *Orchestrator) llmClient() anthropic.Client {
	return guardedLLM{o: o}
}

// search runs one SerpAPI query through the breaker and converts the
// organic results into hits.
func (o *Orchestrator) search(ctx context.Context, query string, num int) ([]model.SearchHit, error) {
	sctx, cancel := o.searchCtx(ctx)
	defer cancel()

	resp, err := resilience.Do(sctx, o.serpBreaker, func(ctx context.Context) (*serp.SearchResponse, error) {
		resp, err := o.serp.Search(ctx, query, num)
		var apiErr *serp.APIError
		if errors.As(err, &apiErr) && resilience.IsTransientHTTPStatus(apiErr.StatusCode) {
			return nil, resilience.NewTransientError(err, apiErr.StatusCode)
		}
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	hits := make([]model.SearchHit, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		hits = append(hits, model.SearchHit{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
		})
	}
	return hits, nil
}
