package compose

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeDashboard parses a backend response into a dashboard document,
// tolerating fenced code-block markers around the JSON.
func decodeDashboard(response string) (map[string]any, error) {
	raw := stripFences(response)
	var dashboard map[string]any
	if err := json.Unmarshal([]byte(raw), &dashboard); err != nil {
		return nil, fmt.Errorf("parse dashboard json: %w", err)
	}
	return dashboard, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "```"); ok {
		// Drop a possible language tag on the opening fence line.
		if i := strings.IndexByte(rest, '\n'); i >= 0 && !strings.ContainsAny(rest[:i], "{[") {
			rest = rest[i+1:]
		}
		s = rest
	}
	if rest, ok := strings.CutSuffix(strings.TrimSpace(s), "```"); ok {
		s = rest
	}
	return strings.TrimSpace(s)
}
