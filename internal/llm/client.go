// Package llm provides clients for the generation backends.
package llm

import (
	"context"
	"fmt"
	"time"

	"dashforge/internal/config"
)

const defaultTimeout = 60 * time.Second

// Request is a single completion request.
type Request struct {
	Instructions string
	Input        string
}

// Response is a single completion response.
type Response struct {
	OutputText string
}

// Client executes a single prompt against a generation backend.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// New constructs a client for the given provider config.
func New(cfg config.ProviderConfig) (Client, error) {
	switch cfg.Type {
	case "openai":
		return newOpenAIClient(cfg)
	case "gemini":
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unknown provider type %q", cfg.Type)
	}
}

func timeoutFor(cfg config.ProviderConfig) time.Duration {
	if cfg.Timeout > 0 {
		return time.Duration(cfg.Timeout) * time.Second
	}
	return defaultTimeout
}
