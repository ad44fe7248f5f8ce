package nlq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKeywords_Velocity(t *testing.T) {
	t.Parallel()

	in, ok := classifyKeywords("tell me about our throughput and capacity")
	require.True(t, ok)
	assert.Equal(t, intentVelocity, in)
}

func TestClassifyKeywords_Bugs(t *testing.T) {
	t.Parallel()

	in, ok := classifyKeywords("any defect or failure reports lately")
	require.True(t, ok)
	assert.Equal(t, intentBugs, in)
}

func TestClassifyKeywords_HighestScoreWins(t *testing.T) {
	t.Parallel()

	// One velocity keyword ("sprint") against two bug keywords ("bug",
	// "error"): bugs must win on score despite velocity's earlier slot.
	in, ok := classifyKeywords("sprint bug error report")
	require.True(t, ok)
	assert.Equal(t, intentBugs, in)
}

func TestClassifyKeywords_TieBreaksByDeclarationOrder(t *testing.T) {
	t.Parallel()

	// Exactly one velocity keyword and one bugs keyword: the tie resolves
	// to velocity, which is declared first.
	in, ok := classifyKeywords("throughput failure")
	require.True(t, ok)
	assert.Equal(t, intentVelocity, in)
}

func TestClassifyKeywords_Performance(t *testing.T) {
	t.Parallel()

	in, ok := classifyKeywords("give me the kpi summary")
	require.True(t, ok)
	assert.Equal(t, intentPerformance, in)
}

func TestClassifyKeywords_Trends(t *testing.T) {
	t.Parallel()

	in, ok := classifyKeywords("anything interesting about q3")
	require.True(t, ok)
	assert.Equal(t, intentTrends, in)
}

func TestClassifyKeywords_SubstringMatching(t *testing.T) {
	t.Parallel()

	// "story points" matches the "story point" keyword as a substring.
	in, ok := classifyKeywords("story points progress")
	require.True(t, ok)
	assert.Equal(t, intentVelocity, in)
}

func TestClassifyKeywords_ZeroHitsFails(t *testing.T) {
	t.Parallel()

	_, ok := classifyKeywords("xyz random gibberish")
	assert.False(t, ok)
}
