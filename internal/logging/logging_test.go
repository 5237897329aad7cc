package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_SetsGlobalLevel(t *testing.T) {
	Init(true)
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Fatalf("global level = %v, want debug", got)
	}

	Init(false)
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("global level = %v, want info", got)
	}
}
