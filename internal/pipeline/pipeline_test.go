package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/datavex/leadforge/internal/guard"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/resilience"
	"github.com/datavex/leadforge/internal/synth"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/jina"
	"github.com/datavex/leadforge/pkg/serp"
)

func testOrchestrator(t *testing.T, serpClient *mockSerpClient, jinaClient *mockJinaClient, llm *mockLLMClient) *Orchestrator {
	t.Helper()
	g, err := guard.Load("")
	require.NoError(t, err)
	return New(testConfig(), serpClient, jinaClient, llm, g)
}

func searchResults(results ...serp.OrganicResult) *serp.SearchResponse {
	return &serp.SearchResponse{OrganicResults: results}
}

func TestCampaignFiltersEnterprises(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(searchResults(
			serp.OrganicResult{Title: "Tiny Bakery", Link: "https://tinybakery.com/blog", Snippet: "drowning in spreadsheets"},
			serp.OrganicResult{Title: "BigCorp Careers", Link: "https://bigcorp.com/jobs", Snippet: "a Fortune 500 company"},
		), nil).
		Once()

	var prompt string
	llm := new(mockLLMClient)
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(anthropic.MessageRequest)
			prompt = req.Messages[0].Content
		}).
		Return(textResponse(`{"leads":[{"name":"Tiny Bakery","domain":"tinybakery.com","why_we_help":"Spreadsheets do not scale."}]}`), nil).
		Once()

	orch := testOrchestrator(t, serpMock, new(mockJinaClient), llm)
	result, err := orch.Campaign(context.Background(), model.CategoryAIData)
	require.NoError(t, err)

	require.Len(t, result.Leads, 1)
	assert.Equal(t, "tinybakery.com", result.Leads[0].Domain)
	assert.NotContains(t, prompt, "bigcorp.com", "blocklisted domains must never reach the model")
	assert.NotEmpty(t, result.AgentTrace)
	serpMock.AssertExpectations(t)
	llm.AssertExpectations(t)
}

func TestCampaignZeroHits(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(searchResults(), nil).
		Once()

	llm := new(mockLLMClient)

	orch := testOrchestrator(t, serpMock, new(mockJinaClient), llm)
	result, err := orch.Campaign(context.Background(), model.CategoryCloudDevOps)
	require.NoError(t, err)

	assert.Empty(t, result.Leads)
	assert.NotNil(t, result.Leads, "empty campaign still returns a list, not null")
	assert.NotEmpty(t, result.AgentTrace)
	llm.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestCampaignSearchFailure(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, eris.New("serp: unexpected status 500")).
		Once()

	orch := testOrchestrator(t, serpMock, new(mockJinaClient), new(mockLLMClient))
	_, err := orch.Campaign(context.Background(), model.CategoryAppDev)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrProvider))

	var traced *TraceError
	require.True(t, errors.As(err, &traced), "failed runs carry the agent trace")
	assert.NotEmpty(t, traced.Trace)
}

func TestProviderErrClassification(t *testing.T) {
	err := providerErr(eris.Wrap(resilience.ErrBreakerOpen, "serp"), "pipeline: campaign search")
	assert.True(t, eris.Is(err, resilience.ErrBreakerOpen))
	assert.False(t, eris.Is(err, ErrProvider))

	err = providerErr(eris.New("serp: unexpected status 500"), "pipeline: campaign search")
	assert.True(t, eris.Is(err, ErrProvider))
}

func TestCampaignUnknownCategory(t *testing.T) {
	orch := testOrchestrator(t, new(mockSerpClient), new(mockJinaClient), new(mockLLMClient))
	_, err := orch.Campaign(context.Background(), model.ServiceCategory("Quantum Gardening"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidInput))
}

func TestDeep(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "funding")
	}), mock.Anything).
		Return(searchResults(serp.OrganicResult{Title: "Tiny Bakery raises seed round", Snippet: "expansion"}), nil).
		Once()
	serpMock.On("Search", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "tech stack")
	}), mock.Anything).
		Return(searchResults(serp.OrganicResult{Title: "Tiny Bakery engineering blog", Snippet: "Shopify"}), nil).
		Once()

	jinaMock := new(mockJinaClient)
	jinaMock.On("Read", mock.Anything, "https://tinybakery.com").
		Return(&jina.ReadResponse{Code: 200, Data: jina.ReadData{Title: "Tiny Bakery", Content: "We bake bread."}}, nil).
		Once()

	llm := new(mockLLMClient)
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{
			"dossier":{"official_name":"Tiny Bakery","summary":"bakery","industry":"Food","estimated_tech_stack":["Shopify"],"company_stage":"seed","company_size":"1-10"},
			"analysis":{"pain_points":["manual inventory"],"why_now":"expanding","datavex_service_match":"Digital Transformation"},
			"verdict":{"score":70,"recommendation":"YES","justification":"fit","size_flag":"SMB"},
			"outreach":{"target_role":"Owner","custom_pitch":"pitch","subject_line":"subject"}
		}`), nil).
		Once()

	orch := testOrchestrator(t, serpMock, jinaMock, llm)
	result, err := orch.Deep(context.Background(), "TinyBakery.com", model.CategoryTransform)
	require.NoError(t, err)

	assert.Equal(t, "Tiny Bakery", result.CompanyDossier.Title)
	assert.Equal(t, "tinybakery.com", result.CompanyDossier.Domain)
	assert.Equal(t, 70, result.Verdict.Score)
	assert.NotEmpty(t, result.AgentTrace)
	serpMock.AssertExpectations(t)
	jinaMock.AssertExpectations(t)
	llm.AssertExpectations(t)
}

func TestDeepInvalidDomain(t *testing.T) {
	orch := testOrchestrator(t, new(mockSerpClient), new(mockJinaClient), new(mockLLMClient))
	_, err := orch.Deep(context.Background(), "https://not-a-bare-domain.com/path", model.CategoryAppDev)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidInput))
}

func TestDeepAllSourcesFail(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, eris.New("serp: unexpected status 503")).
		Twice()

	jinaMock := new(mockJinaClient)
	jinaMock.On("Read", mock.Anything, mock.Anything).
		Return(nil, eris.New("jina: unexpected status 502")).
		Once()

	llm := new(mockLLMClient)

	orch := testOrchestrator(t, serpMock, jinaMock, llm)
	_, err := orch.Deep(context.Background(), "tinybakery.com", model.CategoryAppDev)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrProvider))
	llm.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestDeepToleratesPartialFetchFailure(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(searchResults(serp.OrganicResult{Title: "Tiny Bakery news", Snippet: "expansion"}), nil).
		Twice()

	jinaMock := new(mockJinaClient)
	jinaMock.On("Read", mock.Anything, mock.Anything).
		Return(nil, eris.New("jina: unexpected status 404")).
		Once()

	llm := new(mockLLMClient)
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"dossier":{"official_name":"Tiny Bakery"},"analysis":{},"verdict":{"score":0,"recommendation":"NO","justification":"site unreachable"},"outreach":{}}`), nil).
		Once()

	orch := testOrchestrator(t, serpMock, jinaMock, llm)
	result, err := orch.Deep(context.Background(), "tinybakery.com", model.CategoryAppDev)
	require.NoError(t, err)

	assert.Equal(t, model.RecommendationNo, result.Verdict.Recommendation)
	hasReconEvent := false
	for _, e := range result.AgentTrace {
		if strings.Contains(e, "Homepage unreachable") {
			hasReconEvent = true
		}
	}
	assert.True(t, hasReconEvent)
}

func TestDeepSchemaFailure(t *testing.T) {
	serpMock := new(mockSerpClient)
	serpMock.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return(searchResults(serp.OrganicResult{Title: "news"}), nil).
		Twice()

	jinaMock := new(mockJinaClient)
	jinaMock.On("Read", mock.Anything, mock.Anything).
		Return(&jina.ReadResponse{Data: jina.ReadData{Title: "Tiny Bakery", Content: "bread"}}, nil).
		Once()

	llm := new(mockLLMClient)
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("definitely not json"), nil).
		Twice()

	orch := testOrchestrator(t, serpMock, jinaMock, llm)
	_, err := orch.Deep(context.Background(), "tinybakery.com", model.CategoryAppDev)
	require.Error(t, err)
	assert.True(t, eris.Is(err, synth.ErrSchema))
	assert.False(t, eris.Is(err, ErrProvider))
}

func TestEmail(t *testing.T) {
	llm := new(mockLLMClient)
	llm.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"subject_line":"Subject","email_body":"Body"}`), nil).
		Once()

	orch := testOrchestrator(t, new(mockSerpClient), new(mockJinaClient), llm)
	draft, err := orch.Email(context.Background(), model.EmailRequest{
		CompanyName: "Tiny Bakery",
		Domain:      "tinybakery.com",
		WhyWeHelp:   "Manual inventory slows expansion.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Subject", draft.SubjectLine)
}

func TestEmailMissingFields(t *testing.T) {
	orch := testOrchestrator(t, new(mockSerpClient), new(mockJinaClient), new(mockLLMClient))
	_, err := orch.Email(context.Background(), model.EmailRequest{CompanyName: "X"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidInput))
}
