package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
)

// Intel bundles everything gathered about a single target before synthesis.
type Intel struct {
	Domain     string
	Category   model.ServiceCategory
	ReconTitle string
	ReconText  string
	FiscalNews string
	TechNews   string
	Reachable  bool
}

const dossierSystemText = `You are the Lead Strategist at DataVex, a consulting firm. ` +
	`You analyze a potential client company and decide whether it is a high-value lead. ` +
	`Respond with ONLY a single JSON object in this exact shape, no markdown fences, no commentary:
{
  "dossier": {"official_name": string, "summary": string, "industry": string, "estimated_tech_stack": [string], "company_stage": string, "company_size": string},
  "analysis": {"pain_points": [string], "why_now": string, "datavex_service_match": string},
  "verdict": {"score": number, "recommendation": "YES" or "NO", "justification": string, "size_flag": string},
  "outreach": {"target_role": string, "custom_pitch": string, "subject_line": string}
}
Critical rules:
- Distinguish news from tutorials: ignore "System Design Interview", "How to build", or tutorial content as lead signals.
- If the website recon is empty AND the search results appear to describe a different company, conclude the domain is dead or invalid: score 0, recommendation "NO".
- Never invent information about a similarly named company.
- score is an integer from 0 to 100.`

const dossierPromptTmpl = `Target domain: %s
Service line under consideration: %s
Site reachable: %t

Website recon (title: %s):
%s

Fiscal/news signals:
%s

Tech/market signals:
%s

Analyze the target and return the JSON object.`

// intelligenceDoc is the wire schema for the deep-analysis response.
type intelligenceDoc struct {
	Dossier struct {
		OfficialName       string   `json:"official_name"`
		Summary            string   `json:"summary"`
		Industry           string   `json:"industry"`
		EstimatedTechStack []string `json:"estimated_tech_stack"`
		CompanyStage       string   `json:"company_stage"`
		CompanySize        string   `json:"company_size"`
	} `json:"dossier"`
	Analysis struct {
		PainPoints   []string `json:"pain_points"`
		WhyNow       string   `json:"why_now"`
		ServiceMatch string   `json:"datavex_service_match"`
	} `json:"analysis"`
	Verdict struct {
		Score          float64 `json:"score"`
		Recommendation string  `json:"recommendation"`
		Justification  string  `json:"justification"`
		SizeFlag       string  `json:"size_flag"`
	} `json:"verdict"`
	Outreach struct {
		TargetRole  string `json:"target_role"`
		CustomPitch string `json:"custom_pitch"`
		SubjectLine string `json:"subject_line"`
	} `json:"outreach"`
}

// genericTitles are scraped page titles that carry no company identity.
var genericTitles = []string{"Unknown", "Home", "Index", "Default"}

var nameCaser = cases.Title(language.English)

// Dossier runs the deep-analysis synthesis for a single target. Unlike the
// campaign path there is only one subject, so a schema failure after the
// corrective retry fails the whole request.
func Dossier(ctx context.Context, client anthropic.Client, aiCfg config.AnthropicConfig, intel Intel, trace *model.Trace) (*model.DeepResult, error) {
	req := anthropic.MessageRequest{
		Model:       aiCfg.SonnetModel,
		MaxTokens:   2048,
		Temperature: &lowTemp,
		System:      []anthropic.SystemBlock{{Text: dossierSystemText}},
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(dossierPromptTmpl,
				intel.Domain,
				intel.Category,
				intel.Reachable,
				intel.ReconTitle,
				intel.ReconText,
				intel.FiscalNews,
				intel.TechNews,
			)},
		},
	}

	var doc intelligenceDoc
	err := completeJSON(ctx, client, req, "deep_analysis", trace, func(text string) error {
		doc = intelligenceDoc{}
		if parseErr := json.Unmarshal([]byte(text), &doc); parseErr != nil {
			return parseErr
		}
		if doc.Verdict.Recommendation == "" {
			return eris.New("synth: verdict.recommendation missing")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := resolveName(doc.Dossier.OfficialName, intel.ReconTitle, intel.Domain, trace)

	score := int(doc.Verdict.Score)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	recommendation := strings.ToUpper(strings.TrimSpace(doc.Verdict.Recommendation))
	if recommendation != model.RecommendationYes {
		recommendation = model.RecommendationNo
	}

	trace.Add("Lead Analyst: Strategic profile generated for %s (Score: %d)", name, score)

	return &model.DeepResult{
		CompanyDossier: model.Dossier{
			Title:              name,
			Domain:             intel.Domain,
			Industry:           doc.Dossier.Industry,
			Summary:            doc.Dossier.Summary,
			EstimatedTechStack: doc.Dossier.EstimatedTechStack,
			CompanyStage:       doc.Dossier.CompanyStage,
			CompanySize:        doc.Dossier.CompanySize,
			AnalysisTimestamp:  time.Now().UTC(),
		},
		StrategicAnalysis: model.StrategicAnalysis{
			WhyNow:       doc.Analysis.WhyNow,
			PainPoints:   doc.Analysis.PainPoints,
			ServiceMatch: doc.Analysis.ServiceMatch,
		},
		Verdict: model.Verdict{
			Recommendation: recommendation,
			Score:          score,
			Justification:  doc.Verdict.Justification,
			SizeFlag:       doc.Verdict.SizeFlag,
		},
		OutreachStrategy: model.OutreachStrategy{
			TargetRole:  doc.Outreach.TargetRole,
			SubjectLine: doc.Outreach.SubjectLine,
			CustomPitch: doc.Outreach.CustomPitch,
		},
	}, nil
}

// resolveName picks the best company name: the model's deduced name unless
// it leaked our own brand or came back unknown, then the scraped title
// unless generic, then a title-cased domain label.
func resolveName(aiName, scrapedTitle, domain string, trace *model.Trace) string {
	fallback := nameCaser.String(domainLabel(domain))

	lower := strings.ToLower(aiName)
	if strings.Contains(lower, "data") && strings.Contains(lower, "vex") {
		// The model saw "DataVex" in its instructions and echoed it back as
		// the subject's name.
		trace.Add("Lead Analyst: Correcting internal platform name leak.")
		return fallback
	}

	if name := strings.TrimSpace(aiName); name != "" && !strings.EqualFold(name, "Unknown") {
		return name
	}

	if !isGenericTitle(scrapedTitle) {
		return strings.TrimSpace(scrapedTitle)
	}

	return fallback
}

func isGenericTitle(title string) bool {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return true
	}
	for _, g := range genericTitles {
		if strings.Contains(title, g) {
			return true
		}
	}
	return false
}

// domainLabel returns the leftmost label of a domain.
func domainLabel(domain string) string {
	if idx := strings.Index(domain, "."); idx > 0 {
		return domain[:idx]
	}
	return domain
}
