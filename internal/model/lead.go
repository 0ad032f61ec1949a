// Package model defines the domain types shared by the lead discovery
// pipeline: search hits, candidates, leads, dossiers and verdicts.
package model

import "time"

// SearchHit is a provider-agnostic web search result.
type SearchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Candidate is a normalized prospect extracted from search hits. Domain is
// lowercase with scheme, www prefix and path stripped; one candidate per
// root domain per pipeline run.
type Candidate struct {
	Name    string `json:"name"`
	Domain  string `json:"domain"`
	Snippet string `json:"snippet"`
}

// Lead is a qualified prospect from a campaign run.
type Lead struct {
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	WhyWeHelp string `json:"why_we_help"`
}

// Dossier is the richer company profile produced by deep analysis.
type Dossier struct {
	Title              string    `json:"title"`
	Domain             string    `json:"domain"`
	Industry           string    `json:"industry"`
	Summary            string    `json:"summary"`
	EstimatedTechStack []string  `json:"estimated_tech_stack"`
	CompanyStage       string    `json:"company_stage"`
	CompanySize        string    `json:"company_size"`
	AnalysisTimestamp  time.Time `json:"analysis_timestamp"`
}

// Recommendation values for a Verdict.
const (
	RecommendationYes = "YES"
	RecommendationNo  = "NO"
)

// Verdict is the model's qualification call for a deep-analysis subject.
// Recommendation and Score are independent model outputs; no derivation
// rule links them.
type Verdict struct {
	Recommendation string `json:"recommendation"`
	Score          int    `json:"score"`
	Justification  string `json:"justification"`
	SizeFlag       string `json:"size_flag"`
}

// StrategicAnalysis captures the "why now" reasoning behind a verdict.
type StrategicAnalysis struct {
	WhyNow       string   `json:"why_now"`
	PainPoints   []string `json:"pain_points"`
	ServiceMatch string   `json:"datavex_service_match"`
}

// OutreachStrategy is the suggested approach for contacting a deep-analysis
// subject.
type OutreachStrategy struct {
	TargetRole  string `json:"target_role"`
	SubjectLine string `json:"subject_line"`
	CustomPitch string `json:"custom_pitch"`
}

// EmailDraft is a generated cold-email body with subject line.
type EmailDraft struct {
	SubjectLine string `json:"subject_line"`
	EmailBody   string `json:"email_body"`
}

// EmailRequest identifies the lead an email draft is generated for.
type EmailRequest struct {
	CompanyName     string          `json:"company_name"`
	Domain          string          `json:"domain"`
	WhyWeHelp       string          `json:"why_we_help"`
	ServiceCategory ServiceCategory `json:"service_category"`
}

// CampaignResult is the response envelope for a campaign run.
type CampaignResult struct {
	Leads      []Lead   `json:"leads"`
	AgentTrace []string `json:"agent_trace"`
}

// DeepResult is the response envelope for a single-domain deep analysis.
type DeepResult struct {
	CompanyDossier    Dossier           `json:"company_dossier"`
	StrategicAnalysis StrategicAnalysis `json:"strategic_analysis"`
	Verdict           Verdict           `json:"verdict"`
	OutreachStrategy  OutreachStrategy  `json:"outreach_strategy"`
	AgentTrace        []string          `json:"agent_trace"`
}
