package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ServiceCategory
	}{
		{"exact", "Application Development", CategoryAppDev},
		{"case insensitive", "ai & data analytics", CategoryAIData},
		{"padded", "  Cloud & DevOps  ", CategoryCloudDevOps},
		{"transform", "DIGITAL TRANSFORMATION", CategoryTransform},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseServiceCategory(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseServiceCategoryUnknown(t *testing.T) {
	_, err := ParseServiceCategory("Underwater Basket Weaving")
	assert.Error(t, err)
}

func TestTrace(t *testing.T) {
	tr := NewTrace()
	assert.NotEmpty(t, tr.RunID())
	assert.Empty(t, tr.Events())

	tr.Add("Scout Agent: %d results", 7)
	tr.Add("Filter Agent: done")

	events := tr.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Scout Agent: 7 results", events[0])
	assert.Equal(t, "Filter Agent: done", events[1])

	assert.NotEqual(t, tr.RunID(), NewTrace().RunID())
}
