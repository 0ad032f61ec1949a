package synth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
)

const outreachSystemText = `You write cold outreach emails for DataVex, a consulting firm. ` +
	`Write a short email (under 150 words) from a DataVex partner to a founder or Head of ` +
	`Engineering at the target company. Reference the specific reason we can help. No ` +
	`placeholders like [Name]; address the reader by role. Respond with ONLY a single JSON ` +
	`object, no markdown fences:
{"subject_line": string, "email_body": string}`

const outreachPromptTmpl = `Company: %s (%s)
Why we can help: %s
Service line: %s

Draft the email.`

type emailDoc struct {
	SubjectLine string `json:"subject_line"`
	EmailBody   string `json:"email_body"`
}

// DraftEmail produces a cold outreach email for a qualified lead. The call is
// stateless: the same request yields an independently drafted email each time.
func DraftEmail(ctx context.Context, client anthropic.Client, aiCfg config.AnthropicConfig, req model.EmailRequest, trace *model.Trace) (*model.EmailDraft, error) {
	msgReq := anthropic.MessageRequest{
		Model:       aiCfg.HaikuModel,
		MaxTokens:   512,
		Temperature: &lowTemp,
		System:      []anthropic.SystemBlock{{Text: outreachSystemText}},
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(outreachPromptTmpl,
				req.CompanyName, req.Domain, req.WhyWeHelp, req.ServiceCategory)},
		},
	}

	var doc emailDoc
	err := completeJSON(ctx, client, msgReq, "outreach_draft", trace, func(text string) error {
		doc = emailDoc{}
		if parseErr := json.Unmarshal([]byte(text), &doc); parseErr != nil {
			return parseErr
		}
		if doc.SubjectLine == "" || doc.EmailBody == "" {
			return eris.New("synth: email fields missing")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	trace.Add("Outreach Agent: Email drafted for %s", req.CompanyName)

	return &model.EmailDraft{
		SubjectLine: doc.SubjectLine,
		EmailBody:   doc.EmailBody,
	}, nil
}
