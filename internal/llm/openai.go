package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"dashforge/internal/config"
)

const (
	defaultOpenAIBaseURL   = "https://api.openai.com/v1"
	defaultOpenAIAPIKeyEnv = "OPENAI_API_KEY"
)

// openAIClient wraps the OpenAI responses API for oneshot calls.
type openAIClient struct {
	model  string
	client openai.Client
}

func newOpenAIClient(cfg config.ProviderConfig) (*openAIClient, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("openai model is required")
	}

	apiKey, err := resolveAPIKey(cfg, defaultOpenAIAPIKeyEnv)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &openAIClient{
		model: model,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(timeoutFor(cfg)),
		),
	}, nil
}

// Complete executes a single responses API request.
func (c *openAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        c.model,
		Instructions: openai.String(req.Instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Input),
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("openai responses.create: %w", err)
	}
	if msg := strings.TrimSpace(resp.Error.Message); msg != "" {
		return Response{}, fmt.Errorf("openai response failed: %s", msg)
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return Response{}, fmt.Errorf("openai response did not contain output text")
	}

	return Response{OutputText: output}, nil
}

func resolveAPIKey(cfg config.ProviderConfig, defaultEnv string) (string, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		envKey := strings.TrimSpace(cfg.APIKeyEnv)
		if envKey == "" {
			envKey = defaultEnv
		}
		apiKey = strings.TrimSpace(os.Getenv(envKey))
	}
	if apiKey == "" {
		return "", fmt.Errorf("%s api key is required (set api_key or api_key_env)", cfg.Type)
	}
	return apiKey, nil
}
