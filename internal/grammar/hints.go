package grammar

import (
	"fmt"
	"strings"
)

// classifier rewrites one recognized diagnostic message shape into a repair
// instruction. Classifiers are tried in order; the first match wins.
type classifier func(d Diagnostic) (string, bool)

var classifiers = []classifier{
	missingProperty,
	typeMismatch,
	unionMismatch,
}

// Hints converts diagnostics into deduplicated repair instructions for the
// repair prompt. Unrecognized messages pass through verbatim with their
// location attached.
func Hints(diags []Diagnostic) []string {
	seen := make(map[string]bool, len(diags))
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		hint := classify(d)
		if seen[hint] {
			continue
		}
		seen[hint] = true
		out = append(out, hint)
	}
	return out
}

func classify(d Diagnostic) string {
	for _, c := range classifiers {
		if hint, ok := c(d); ok {
			return hint
		}
	}
	return fmt.Sprintf("Validation error at '%s': %s", d.Path, d.Message)
}

// missingProperty matches "<name> is required".
func missingProperty(d Diagnostic) (string, bool) {
	name, ok := strings.CutSuffix(d.Message, " is required")
	if !ok || name == "" || strings.Contains(name, " ") {
		return "", false
	}
	return fmt.Sprintf("Missing required property '%s' at path '%s'", name, d.Path), true
}

// typeMismatch matches "Invalid type. Expected: <type>, given: <type>".
func typeMismatch(d Diagnostic) (string, bool) {
	rest, ok := strings.CutPrefix(d.Message, "Invalid type. Expected: ")
	if !ok {
		return "", false
	}
	expected, _, _ := strings.Cut(rest, ",")
	return fmt.Sprintf("Type error at '%s': expected %s", d.Path, expected), true
}

// unionMismatch matches the anyOf/oneOf failure messages.
func unionMismatch(d Diagnostic) (string, bool) {
	if !strings.HasPrefix(d.Message, "Must validate ") {
		return "", false
	}
	return fmt.Sprintf("Invalid value at '%s': doesn't match any allowed schema", d.Path), true
}
