package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	usage := TokenUsage{InputTokens: 1_000_000, OutputTokens: 500_000}

	tests := []struct {
		name  string
		model string
		want  float64
	}{
		{"haiku", "claude-haiku-4-5-20251001", 0.80 + 2.00},
		{"sonnet", "claude-sonnet-4-5-20250929", 3.00 + 7.50},
		{"unknown model", "some-future-model", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, usage.EstimateCost(tc.model), 1e-9)
		})
	}
}

func TestEstimateCostZeroUsage(t *testing.T) {
	assert.Zero(t, TokenUsage{}.EstimateCost("claude-haiku-4-5-20251001"))
}
