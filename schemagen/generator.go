// Package schemagen generates a GraphQL schema from TypeScript type
// declarations.
//
// The pipeline reads one TypeScript file into the IR (provider), lowers the
// declarations to schema text (graphql.Extract), parses that text, binds
// operation arguments and prunes the argument holders (graphql.Rewrite), and
// prints the result to a sink.
package schemagen

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/graphql"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/provider"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/sink"
)

// DefaultOutputName is the file name passed to a custom Sink when Output
// is empty.
const DefaultOutputName = "schema.graphql"

// GenerateResult contains the output of a generation run.
type GenerateResult struct {
	// Schema is the printed schema.
	Schema []byte

	// Output is the name the schema was written under, empty when nothing
	// was written.
	Output string

	// File is the parsed input.
	File *ir.File

	// Extraction holds the lowered fragments and the arguments table.
	Extraction *graphql.Extraction

	// Report summarizes the rewrite pass.
	Report *graphql.RewriteReport

	// Config is the effective configuration after defaults, directives
	// and overrides.
	Config Config

	// Warnings contains non-fatal issues from parsing and lowering.
	Warnings []ir.Warning
}

// Generate runs the full pipeline and writes the schema.
// Nothing is written when any stage fails.
func Generate(ctx context.Context, cfg *Config) (*GenerateResult, error) {
	return run(ctx, cfg, true)
}

// Check runs the full pipeline without writing anything.
func Check(ctx context.Context, cfg *Config) (*GenerateResult, error) {
	return run(ctx, cfg, false)
}

func run(ctx context.Context, cfg *Config, write bool) (*GenerateResult, error) {
	if cfg == nil {
		return nil, NewError(CodeUsage, "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &provider.SourceProvider{}
	file, err := p.BuildFile(ctx, provider.SourceInputOptions{
		Path:   cfg.Input,
		Source: cfg.Source,
	})
	if err != nil {
		return nil, Classify(err)
	}
	for _, w := range file.Warnings {
		logWarning(logger, w)
	}

	var directives Overrides
	if !cfg.NoDirectives {
		directives, err = DirectiveOverrides(file)
		if err != nil {
			return nil, err
		}
	}
	eff, err := cfg.resolve(directives)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved config",
		slog.String("input", eff.Input),
		slog.String("nullability", string(eff.Nullability)),
		slog.Int("indent", eff.Indent),
		slog.Int("declarations", len(file.Declarations)))

	ext, err := graphql.Extract(file, eff.graphqlOptions())
	if err != nil {
		return nil, Classify(err).WithDetail("input", eff.Input)
	}

	doc, err := graphql.ParseSchema(eff.Input, ext.SchemaText)
	if err != nil {
		return nil, Classify(err)
	}
	report := graphql.Rewrite(doc, ext.Args, graphql.RewriteOptions{Logger: logger})
	// Schema literals may hold nothing but arguments definitions.
	if len(doc.Definitions) == 0 && len(doc.Extensions) == 0 &&
		len(doc.Directives) == 0 && len(doc.Schema) == 0 {
		return nil, Classify(graphql.ErrNoDefinitionsFound).WithDetail("input", eff.Input)
	}

	result := &GenerateResult{
		Schema:     graphql.PrintSchema(doc, eff.printOptions()),
		File:       file,
		Extraction: ext,
		Report:     report,
		Config:     eff,
	}
	result.Warnings = append(result.Warnings, file.Warnings...)
	result.Warnings = append(result.Warnings, ext.Warnings...)

	if !write {
		return result, nil
	}

	out, name, err := eff.outputSink()
	if err != nil {
		return nil, &Error{Code: CodeWrite, Message: err.Error(), Err: err}
	}
	if out == nil {
		return result, nil
	}
	if err := out.WriteFile(ctx, name, result.Schema); err != nil {
		if e := Classify(err); e.Code == CodeCanceled || e.Code == CodeDeadlineExceeded {
			return nil, e
		}
		return nil, (&Error{Code: CodeWrite, Message: err.Error(), Err: err}).WithDetail("output", name)
	}
	result.Output = name
	if eff.Output != "" {
		result.Output = eff.Output
	}
	logger.Info("schema written",
		slog.String("output", result.Output),
		slog.Int("bytes", len(result.Schema)),
		slog.Int("bound", len(report.Bound)),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

// outputSink picks the sink and file name for the schema. It returns a nil
// sink when there is nowhere to write.
func (cfg *Config) outputSink() (sink.OutputSink, string, error) {
	if cfg.Sink != nil {
		name := DefaultOutputName
		if cfg.Output != "" {
			name = filepath.Base(cfg.Output)
		}
		return cfg.Sink, name, nil
	}
	if cfg.Output == "" {
		return nil, "", nil
	}
	return sink.ForFile(cfg.Output)
}

func logWarning(logger *slog.Logger, w ir.Warning) {
	attrs := []any{slog.String("code", w.Code)}
	if w.Source != nil {
		attrs = append(attrs, slog.String("source", w.Source.String()))
	}
	logger.Warn(w.Message, attrs...)
}
