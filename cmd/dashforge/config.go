package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"dashforge/internal/compose"
	"dashforge/internal/config"
	"dashforge/internal/llm"
	"dashforge/internal/retrieval"
	"dashforge/internal/workflow"
)

const (
	defaultAddr       = ":8000"
	defaultMaxRepairs = 3
)

func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = "dashforge.json"
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := config.ValidateSettings(viper.AllSettings()); err != nil {
		return config.Config{}, err
	}
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Defaults.MaxRepairs <= 0 {
		cfg.Defaults.MaxRepairs = defaultMaxRepairs
	}
	return cfg, nil
}

// buildController wires the drivers for the given provider id. An empty id
// selects the configured default.
func buildController(cfg config.Config, providerID string) (*workflow.Controller, error) {
	id, provider, ok := cfg.Provider(providerID)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", id)
	}
	retriever, err := retrieval.NewKeywordRetriever()
	if err != nil {
		return nil, err
	}
	return newController(provider, id, retriever, cfg.Defaults.MaxRepairs)
}

// buildControllers wires one controller per configured provider for the
// server, which accepts a provider id per request. A provider that cannot
// be built (e.g. its API key is absent) is skipped with a warning so it
// does not block the others; the default provider must build.
func buildControllers(cfg config.Config) (map[string]*workflow.Controller, error) {
	retriever, err := retrieval.NewKeywordRetriever()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*workflow.Controller, len(cfg.Providers))
	for id, provider := range cfg.Providers {
		controller, err := newController(provider, id, retriever, cfg.Defaults.MaxRepairs)
		if err != nil {
			if id == cfg.Defaults.Provider {
				return nil, err
			}
			log.Warn().Err(err).Str("provider", id).Msg("provider unavailable, skipping")
			continue
		}
		out[id] = controller
	}
	if _, ok := out[cfg.Defaults.Provider]; !ok {
		return nil, fmt.Errorf("default provider %q is not configured", cfg.Defaults.Provider)
	}
	return out, nil
}

func newController(provider config.ProviderConfig, id string, retriever retrieval.Retriever, maxRepairs int) (*workflow.Controller, error) {
	client, err := llm.New(provider)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", id, err)
	}
	return workflow.NewController(
		compose.NewGenerator(client, retriever),
		compose.NewRepairer(client),
		maxRepairs,
	), nil
}
