package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luca-saggese/graphql-schema-generator/schemagen"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{schemagen.NewError(schemagen.CodeUsage, "input: required"), 2},
		{fmt.Errorf("load: %w", schemagen.NewError(schemagen.CodeInvalidConfig, "bad")), 2},
		{schemagen.NewError(schemagen.CodeNoDefinitions, "none"), 1},
		{errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("expected a version string")
	}
	if !strings.Contains(v, strings.TrimSpace(embeddedVersion)) && !strings.HasPrefix(v, "v") {
		t.Errorf("unexpected version %q", v)
	}
}
