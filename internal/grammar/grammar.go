// Package grammar validates dashboard documents against the embedded
// dashboard schema and turns schema violations into repair hints.
package grammar

import (
	_ "embed"
	"sort"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// RootPath is the diagnostic location for document-level failures.
const RootPath = "root"

// Diagnostic is a single structural violation in a dashboard document.
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validate checks a dashboard document against the schema and returns all
// violations found. An empty slice means the document is valid. Malformed
// input is the expected case here: it is reported as diagnostics, never as
// an error. The result is deterministic for a given document.
func Validate(dashboard map[string]any) []Diagnostic {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(dashboard)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []Diagnostic{{Path: RootPath, Message: err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	diags := make([]Diagnostic, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		diags = append(diags, Diagnostic{
			Path:    normalizePath(schemaErr.Field()),
			Message: schemaErr.Description(),
		})
	}
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		return diags[i].Message < diags[j].Message
	})
	return diags
}

func normalizePath(field string) string {
	if field == "" || field == "(root)" {
		return RootPath
	}
	return field
}
