package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/datavex/leadforge/internal/config"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/jina"
	"github.com/datavex/leadforge/pkg/serp"
)

// --- SerpAPI mock ---

type mockSerpClient struct {
	mock.Mock
}

func (m *mockSerpClient) Search(ctx context.Context, query string, num int) (*serp.SearchResponse, error) {
	args := m.Called(ctx, query, num)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serp.SearchResponse), args.Error(1)
}

// --- Jina mock ---

type mockJinaClient struct {
	mock.Mock
}

func (m *mockJinaClient) Read(ctx context.Context, targetURL string) (*jina.ReadResponse, error) {
	args := m.Called(ctx, targetURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jina.ReadResponse), args.Error(1)
}

// --- Anthropic mock ---

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// Interface compliance.
var (
	_ serp.Client      = (*mockSerpClient)(nil)
	_ jina.Client      = (*mockJinaClient)(nil)
	_ anthropic.Client = (*mockLLMClient)(nil)
)

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Serp:      config.SerpConfig{TimeoutSecs: 5},
		Jina:      config.JinaConfig{TimeoutSecs: 5},
		Anthropic: config.AnthropicConfig{HaikuModel: "claude-haiku-4-5-20251001", SonnetModel: "claude-sonnet-4-5-20250929", TimeoutSecs: 10},
		Pipeline:  config.PipelineConfig{MaxHits: 20, MaxCandidates: 5, ReconCharLimit: 10000},
	}
}
