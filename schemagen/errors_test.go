package schemagen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/graphql"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/provider"
)

func TestErrorf(t *testing.T) {
	err := Errorf(CodeWrite, "cannot write %s", "out.graphql")
	if err.Code != CodeWrite {
		t.Errorf("expected code %s, got %s", CodeWrite, err.Code)
	}
	if err.Error() != "write_error: cannot write out.graphql" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("generate: %w", Errorf(CodeNoDefinitions, "nothing in %s", "a.ts"))
	if !errors.Is(err, NewError(CodeNoDefinitions, "")) {
		t.Error("expected errors.Is to match on code")
	}
	if errors.Is(err, NewError(CodeWrite, "")) {
		t.Error("expected errors.Is not to match a different code")
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := Classify(graphql.ErrNoDefinitionsFound)
	if !errors.Is(err, graphql.ErrNoDefinitionsFound) {
		t.Error("expected the sentinel to be reachable through Unwrap")
	}
}

func TestWithDetailDoesNotMutate(t *testing.T) {
	base := NewError(CodeInvalidConfig, "bad")
	withPath := base.WithDetail("path", "a.yaml")
	if base.Details != nil {
		t.Errorf("expected base details to stay nil, got %v", base.Details)
	}
	if withPath.Details["path"] != "a.yaml" {
		t.Errorf("expected path detail, got %v", withPath.Details)
	}

	merged := withPath.WithDetails(map[string]any{"line": 3})
	if len(merged.Details) != 2 || len(withPath.Details) != 1 {
		t.Errorf("unexpected details: merged=%v original=%v", merged.Details, withPath.Details)
	}
	if same := withPath.WithDetails(nil); same != withPath {
		t.Error("expected WithDetails(nil) to return the receiver")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		wantCode ErrorCode
	}{
		{"nil", nil, ""},
		{"passthrough", NewError(CodeWrite, "x"), CodeWrite},
		{"canceled", fmt.Errorf("build: %w", context.Canceled), CodeCanceled},
		{"deadline", context.DeadlineExceeded, CodeDeadlineExceeded},
		{"read", &provider.ReadError{Path: "a.ts", Err: fs.ErrNotExist}, CodeSourceRead},
		{"syntax", &provider.SyntaxError{File: "a.ts", Line: 1, Column: 2, Msg: "unterminated string literal"}, CodeSourceSyntax},
		{"no definitions", graphql.ErrNoDefinitionsFound, CodeNoDefinitions},
		{"schema parse", fmt.Errorf("%w: boom", graphql.ErrSchemaParse), CodeSchemaParse},
		{"joined", errors.Join(graphql.ErrNoDefinitionsFound, errors.New("other")), CodeNoDefinitions},
		{"unknown", errors.New("boom"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if tt.input == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
		})
	}
}

func TestClassifyReadErrorDetails(t *testing.T) {
	got := Classify(&provider.ReadError{Path: "missing.ts", Err: fs.ErrNotExist})
	if got.Details["path"] != "missing.ts" {
		t.Errorf("expected path detail, got %v", got.Details)
	}
	if !errors.Is(got, fs.ErrNotExist) {
		t.Error("expected cause to be preserved")
	}
}

func TestClassifyJoinedKeepsAllMessages(t *testing.T) {
	got := Classify(errors.Join(errors.New("first"), errors.New("second")))
	if got.Message != "first; second" {
		t.Errorf("expected joined message, got %q", got.Message)
	}
}

func TestClassifyValidationErrors(t *testing.T) {
	type TestStruct struct {
		Name  string `validate:"required"`
		Mode  string `validate:"oneof=a b"`
		Depth int    `validate:"max=8"`
	}
	err := validator.New().Struct(TestStruct{Mode: "c", Depth: 9})

	got := Classify(err)
	if got.Code != CodeUsage {
		t.Errorf("expected code %s, got %s", CodeUsage, got.Code)
	}
	want := map[string]string{
		"Name":  "required",
		"Mode":  "must be one of: a b",
		"Depth": "must be at most 8",
	}
	for field, msg := range want {
		if got.Details[field] != msg {
			t.Errorf("expected %s detail %q, got %v", field, msg, got.Details[field])
		}
	}
	if got.Message != "Name: required; Mode: must be one of: a b; Depth: must be at most 8" {
		t.Errorf("unexpected message %q", got.Message)
	}
}
