package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
)

// MaxLeadCandidates caps how many candidates are sent to the model per
// campaign run.
const MaxLeadCandidates = 5

const leadsSystemText = `You are the Lead Strategist at DataVex, a consulting firm. ` +
	`You qualify small and medium businesses as prospects for a given service line. ` +
	`Respond with ONLY a single JSON object in this exact shape, no markdown fences, no commentary:
{"leads": [{"name": string, "domain": string, "why_we_help": string}]}
Rules:
- Include only companies from the provided candidate list, identified by their exact domain.
- why_we_help is 1-2 sentences tailored to the company's apparent need.
- Exclude candidates that look like large enterprises, job boards, tutorials, or news aggregators.
- If no candidate qualifies, return {"leads": []}.`

const leadsPromptTmpl = `Service line: %s

Candidates:
%s

Qualify the candidates that plausibly need this service and return the JSON object.`

// leadsDoc is the wire schema for the campaign synthesis response.
type leadsDoc struct {
	Leads []struct {
		Name      string `json:"name"`
		Domain    string `json:"domain"`
		WhyWeHelp string `json:"why_we_help"`
	} `json:"leads"`
}

// Leads sends the filtered candidates to the model and returns validated
// leads. A schema failure after the corrective retry degrades to an empty
// lead list rather than an error: one bad response must not sink a
// campaign run.
func Leads(ctx context.Context, client anthropic.Client, aiCfg config.AnthropicConfig, cat model.ServiceCategory, cands []model.Candidate, trace *model.Trace) ([]model.Lead, error) {
	if len(cands) == 0 {
		return nil, nil
	}
	if len(cands) > MaxLeadCandidates {
		cands = cands[:MaxLeadCandidates]
	}

	allowed := make(map[string]bool, len(cands))
	var sb strings.Builder
	for _, c := range cands {
		allowed[c.Domain] = true
		fmt.Fprintf(&sb, "- %s (%s): %s\n", c.Name, c.Domain, c.Snippet)
	}

	req := anthropic.MessageRequest{
		Model:       aiCfg.SonnetModel,
		MaxTokens:   1024,
		Temperature: &lowTemp,
		System:      []anthropic.SystemBlock{{Text: leadsSystemText}},
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(leadsPromptTmpl, cat, sb.String())},
		},
	}

	var doc leadsDoc
	err := completeJSON(ctx, client, req, "lead_synthesis", trace, func(text string) error {
		doc = leadsDoc{}
		return json.Unmarshal([]byte(text), &doc)
	})
	if err != nil {
		if eris.Is(err, ErrSchema) {
			// Batch mode degrades instead of failing.
			zap.L().Warn("synth: lead synthesis degraded to empty result")
			return nil, nil
		}
		return nil, err
	}

	var leads []model.Lead
	for _, l := range doc.Leads {
		domain := strings.ToLower(strings.TrimSpace(l.Domain))
		if !allowed[domain] {
			// Anti-hallucination: the model may only return candidates it
			// was given.
			zap.L().Warn("synth: discarding hallucinated lead", zap.String("domain", l.Domain))
			continue
		}
		name := strings.TrimSpace(l.Name)
		if name == "" {
			name = domain
		}
		leads = append(leads, model.Lead{
			Name:      name,
			Domain:    domain,
			WhyWeHelp: strings.TrimSpace(l.WhyWeHelp),
		})
	}

	return leads, nil
}
