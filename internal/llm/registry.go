package llm

import (
	"sort"

	"dashforge/internal/config"
)

// ModelInfo describes one configured generation backend.
type ModelInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
}

// Models lists the configured providers in stable order.
func Models(cfg config.Config) []ModelInfo {
	out := make([]ModelInfo, 0, len(cfg.Providers))
	for id, p := range cfg.Providers {
		name := p.Name
		if name == "" {
			name = p.Model
		}
		out = append(out, ModelInfo{
			ID:      id,
			Name:    name,
			Default: id == cfg.Defaults.Provider,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
