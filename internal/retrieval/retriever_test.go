package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordRetriever_MatchesMetricsTerms(t *testing.T) {
	t.Parallel()

	r, err := NewKeywordRetriever()
	require.NoError(t, err)

	got, err := r.Retrieve(context.Background(), "CPU monitoring dashboard")
	require.NoError(t, err)

	assert.Contains(t, got, "metrics_examples")
	assert.Contains(t, got, "system_dashboard_example")
}

func TestKeywordRetriever_PrefersPostgresWhenMentioned(t *testing.T) {
	t.Parallel()

	r, err := NewKeywordRetriever()
	require.NoError(t, err)

	got, err := r.Retrieve(context.Background(), "postgres database health overview")
	require.NoError(t, err)

	sql, ok := got["sql_examples"].(map[string]any)
	require.True(t, ok, "sql_examples missing or wrong type: %v", got)
	assert.Contains(t, sql, "active_connections")
}

func TestKeywordRetriever_FallsBackToGeneralExamples(t *testing.T) {
	t.Parallel()

	r, err := NewKeywordRetriever()
	require.NoError(t, err)

	got, err := r.Retrieve(context.Background(), "something entirely unrelated")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Contains(t, got, "general_dashboard_examples")
}

func TestRender_HeadingsAndBullets(t *testing.T) {
	t.Parallel()

	out := Render(map[string]any{
		"metrics_examples": map[string]any{
			"cpu_usage": "rate(...)",
		},
		"system_dashboard_example": map[string]any{
			"description": "System overview",
			"panels":      "CPU Usage, Memory Usage",
		},
	})

	assert.Contains(t, out, "## Metrics Examples")
	assert.Contains(t, out, "- Cpu Usage: rate(...)")
	assert.Contains(t, out, "## System Dashboard Example")
	assert.Contains(t, out, "- Description: System overview")

	// Top-level sections come out in sorted key order.
	assert.Less(t,
		strings.Index(out, "## Metrics Examples"),
		strings.Index(out, "## System Dashboard Example"))
}

func TestRender_EmptyContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No additional context available.", Render(nil))
}
