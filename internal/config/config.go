// Package config provides configuration loading and management for dashforge.
package config

// Config is the root configuration.
type Config struct {
	Server    ServerConfig              `json:"server"    mapstructure:"server"`
	Providers map[string]ProviderConfig `json:"providers" mapstructure:"providers"`
	Defaults  Defaults                  `json:"defaults"  mapstructure:"defaults"`
	Journal   JournalConfig             `json:"journal"   mapstructure:"journal"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// ProviderConfig describes one generation backend.
type ProviderConfig struct {
	Type      string `json:"type"                  mapstructure:"type"`
	Name      string `json:"name,omitempty"        mapstructure:"name"`
	Model     string `json:"model"                 mapstructure:"model"`
	BaseURL   string `json:"base_url,omitempty"    mapstructure:"base_url"`
	APIKey    string `json:"api_key,omitempty"     mapstructure:"api_key"`
	APIKeyEnv string `json:"api_key_env,omitempty" mapstructure:"api_key_env"`
	Timeout   int    `json:"timeout,omitempty"     mapstructure:"timeout"`
}

// Defaults defines per-request defaults.
type Defaults struct {
	Provider   string `json:"provider"              mapstructure:"provider"`
	MaxRepairs int    `json:"max_repairs"           mapstructure:"max_repairs"`
	UseContext bool   `json:"use_context,omitempty" mapstructure:"use_context"`
}

// JournalConfig describes the optional run-event journal.
type JournalConfig struct {
	Path string `json:"path,omitempty" mapstructure:"path"`
}

// Provider resolves a provider config by id, falling back to the configured
// default when id is empty.
func (c Config) Provider(id string) (string, ProviderConfig, bool) {
	if id == "" {
		id = c.Defaults.Provider
	}
	p, ok := c.Providers[id]
	return id, p, ok
}
