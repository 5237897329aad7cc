package retrieval

import (
	"fmt"
	"sort"
	"strings"
)

// Render formats a retrieved context as markdown for prompt injection.
// Top-level keys become headings, nested maps become sub-headings, and
// scalar leaves become bullet lines. Key order is deterministic.
func Render(context map[string]any) string {
	if len(context) == 0 {
		return "No additional context available."
	}

	var b strings.Builder
	for _, key := range sortedKeys(context) {
		b.WriteString("## " + headline(key) + "\n")
		renderValue(&b, context[key], 3)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderValue(b *strings.Builder, value any, depth int) {
	nested, ok := value.(map[string]any)
	if !ok {
		fmt.Fprintf(b, "%v\n", value)
		return
	}
	for _, key := range sortedKeys(nested) {
		if sub, ok := nested[key].(map[string]any); ok {
			b.WriteString("\n" + strings.Repeat("#", depth) + " " + headline(key) + "\n")
			for _, subKey := range sortedKeys(sub) {
				fmt.Fprintf(b, "- %s: %v\n", headline(subKey), sub[subKey])
			}
			continue
		}
		fmt.Fprintf(b, "- %s: %v\n", headline(key), nested[key])
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// headline turns snake_case keys into title-cased headings.
func headline(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
