package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"dashforge/internal/config"
)

const defaultGeminiAPIKeyEnv = "GEMINI_API_KEY"

// geminiClient wraps the Gemini API for oneshot calls.
type geminiClient struct {
	model   string
	timeout time.Duration
	client  *genai.Client
}

func newGeminiClient(cfg config.ProviderConfig) (*geminiClient, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	apiKey, err := resolveAPIKey(cfg, defaultGeminiAPIKeyEnv)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &geminiClient{
		model:   model,
		timeout: timeoutFor(cfg),
		client:  client,
	}, nil
}

// Complete executes a single generate-content request.
func (c *geminiClient) Complete(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(req.Input, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.Instructions, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate content: %w", err)
	}

	output := strings.TrimSpace(result.Text())
	if output == "" {
		return Response{}, fmt.Errorf("gemini response did not contain output text")
	}

	return Response{OutputText: output}, nil
}
