// Package provider parses TypeScript declaration sources into the type AST
// defined by package ir.
//
// The parser models what schema generation needs: type aliases, interfaces,
// enums, tagged GraphQL templates and gqlschema comment directives. Other
// statements (imports, classes, functions, variables) are skipped, and
// statements that fail to parse become warnings instead of errors.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// SourceProvider extracts declarations from a TypeScript source file.
type SourceProvider struct{}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Path is the input file. It is read unless Source is set, and is
	// recorded in source locations either way.
	Path string

	// Source, when non-nil, is parsed instead of reading Path.
	Source []byte
}

// ReadError reports an input file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// BuildFile reads and parses the input described by opts.
func (p *SourceProvider) BuildFile(ctx context.Context, opts SourceInputOptions) (*ir.File, error) {
	if opts.Path == "" && opts.Source == nil {
		return nil, errors.New("no input specified")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := opts.Source
	if src == nil {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, &ReadError{Path: opts.Path, Err: err}
		}
		src = data
	}

	return ParseSource(opts.Path, src)
}

// ParseSource parses TypeScript source text. Statement-level syntax errors
// are recorded as warnings on the returned file; only input that cannot be
// tokenized (for example an unterminated string) returns a *SyntaxError.
func ParseSource(path string, src []byte) (*ir.File, error) {
	tokens, comments, err := lex(string(src))
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.File = path
		}
		return nil, err
	}

	file := &ir.File{Path: path}
	p := &parser{toks: tokens, file: file}
	p.parseStatements(false)

	for _, d := range directivesFromComments(path, comments) {
		file.AddDirective(d)
	}
	return file, nil
}
