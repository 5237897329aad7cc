package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashforge/internal/config"
)

func TestNew_UnknownProviderType(t *testing.T) {
	t.Parallel()

	_, err := New(config.ProviderConfig{Type: "llama", Model: "llama-3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type")
}

func TestNew_OpenAIRequiresModel(t *testing.T) {
	t.Parallel()

	_, err := New(config.ProviderConfig{Type: "openai", APIKey: "sk-test"})
	require.Error(t, err)
}

func TestNew_OpenAIRequiresAPIKey(t *testing.T) {
	_, err := New(config.ProviderConfig{
		Type:      "openai",
		Model:     "gpt-4o",
		APIKeyEnv: "DASHFORGE_TEST_MISSING_KEY",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestModels_StableOrderAndDefaultFlag(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Providers: map[string]config.ProviderConfig{
			"gemini-flash": {Type: "gemini", Model: "gemini-2.0-flash"},
			"gpt-4o":       {Type: "openai", Model: "gpt-4o", Name: "OpenAI GPT-4o"},
		},
		Defaults: config.Defaults{Provider: "gpt-4o"},
	}

	models := Models(cfg)
	require.Len(t, models, 2)
	assert.Equal(t, "gemini-flash", models[0].ID)
	assert.Equal(t, "gemini-2.0-flash", models[0].Name)
	assert.False(t, models[0].Default)
	assert.Equal(t, "gpt-4o", models[1].ID)
	assert.Equal(t, "OpenAI GPT-4o", models[1].Name)
	assert.True(t, models[1].Default)
}
