// Package retrieval supplies contextual hints for dashboard generation
// prompts. The corpus ships with the binary; matching is keyword-based.
package retrieval

import (
	_ "embed"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed contexts.yaml
var corpusYAML []byte

// Retriever returns contextual hints relevant to a request.
type Retriever interface {
	Retrieve(ctx context.Context, text string) (map[string]any, error)
}

type dashboardExample struct {
	Description string   `yaml:"description"`
	Panels      []string `yaml:"panels"`
}

type corpus struct {
	SQLQueries        map[string]map[string]string `yaml:"sql_queries"`
	LogFormats        map[string]map[string]string `yaml:"log_formats"`
	DashboardExamples map[string]dashboardExample  `yaml:"dashboard_examples"`
}

// KeywordRetriever matches request keywords against the embedded corpus.
type KeywordRetriever struct {
	corpus corpus
}

// NewKeywordRetriever parses the embedded corpus.
func NewKeywordRetriever() (*KeywordRetriever, error) {
	var c corpus
	if err := yaml.Unmarshal(corpusYAML, &c); err != nil {
		return nil, fmt.Errorf("parse retrieval corpus: %w", err)
	}
	return &KeywordRetriever{corpus: c}, nil
}

// Retrieve returns the corpus sections matching the request text. A request
// with no recognized keywords gets the general dashboard examples so the
// prompt is never left without structural guidance.
func (r *KeywordRetriever) Retrieve(_ context.Context, text string) (map[string]any, error) {
	lower := strings.ToLower(text)
	out := map[string]any{}

	if containsAny(lower, "mysql", "sql", "database", "query") {
		examples := r.corpus.SQLQueries["mysql"]
		if strings.Contains(lower, "postgres") {
			examples = r.corpus.SQLQueries["postgres"]
		}
		out["sql_examples"] = stringMapToAny(examples)
	}

	if containsAny(lower, "prometheus", "metrics", "monitoring", "cpu", "memory") {
		out["metrics_examples"] = stringMapToAny(r.corpus.SQLQueries["prometheus"])
		out["system_dashboard_example"] = r.corpus.DashboardExamples["system_monitoring"].toMap()
	}

	if containsAny(lower, "logs", "logging", "nginx", "error log") {
		formats := r.corpus.LogFormats["nginx"]
		if !strings.Contains(lower, "nginx") && containsAny(lower, "application", "json") {
			formats = r.corpus.LogFormats["application"]
		}
		out["log_formats"] = stringMapToAny(formats)
	}

	if containsAny(lower, "api", "latency", "performance", "error rate") {
		out["application_dashboard_example"] = r.corpus.DashboardExamples["application_performance"].toMap()
	}

	if len(out) == 0 {
		general := map[string]any{}
		for name, example := range r.corpus.DashboardExamples {
			general[name] = example.toMap()
		}
		out["general_dashboard_examples"] = general
	}

	return out, nil
}

func (e dashboardExample) toMap() map[string]any {
	return map[string]any{
		"description": e.Description,
		"panels":      strings.Join(e.Panels, ", "),
	}
}

func stringMapToAny(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
