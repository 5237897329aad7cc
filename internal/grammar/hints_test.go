package grammar

import "testing"

func TestHints_MissingProperty(t *testing.T) {
	t.Parallel()

	hints := Hints([]Diagnostic{{Path: "root", Message: "title is required"}})
	if len(hints) != 1 {
		t.Fatalf("len(hints) = %d, want 1", len(hints))
	}
	want := "Missing required property 'title' at path 'root'"
	if hints[0] != want {
		t.Fatalf("hint = %q, want %q", hints[0], want)
	}
}

func TestHints_TypeMismatch(t *testing.T) {
	t.Parallel()

	hints := Hints([]Diagnostic{{
		Path:    "panels.0.id",
		Message: "Invalid type. Expected: integer, given: string",
	}})
	want := "Type error at 'panels.0.id': expected integer"
	if len(hints) != 1 || hints[0] != want {
		t.Fatalf("hints = %v, want [%q]", hints, want)
	}
}

func TestHints_UnionMismatch(t *testing.T) {
	t.Parallel()

	hints := Hints([]Diagnostic{{
		Path:    "panels.0.datasource",
		Message: "Must validate one and only one schema (oneOf)",
	}})
	want := "Invalid value at 'panels.0.datasource': doesn't match any allowed schema"
	if len(hints) != 1 || hints[0] != want {
		t.Fatalf("hints = %v, want [%q]", hints, want)
	}
}

func TestHints_PassthroughForUnrecognizedMessage(t *testing.T) {
	t.Parallel()

	hints := Hints([]Diagnostic{{Path: "refresh", Message: "something odd happened"}})
	want := "Validation error at 'refresh': something odd happened"
	if len(hints) != 1 || hints[0] != want {
		t.Fatalf("hints = %v, want [%q]", hints, want)
	}
}

func TestHints_Deduplicates(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		{Path: "root", Message: "title is required"},
		{Path: "root", Message: "title is required"},
		{Path: "root", Message: "panels is required"},
	}
	hints := Hints(diags)
	if len(hints) != 2 {
		t.Fatalf("len(hints) = %d, want 2: %v", len(hints), hints)
	}
}
