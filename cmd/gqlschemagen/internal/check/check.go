package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/luca-saggese/graphql-schema-generator/cmd/gqlschemagen/internal/options"
	"github.com/luca-saggese/graphql-schema-generator/schemagen"
)

type Cmd struct {
	options.Flags

	DumpIR bool `help:"Print the parsed declarations as JSON." name:"dump-ir"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	return c.run(ctx, logger, os.Stdout)
}

func (c *Cmd) run(ctx context.Context, logger *slog.Logger, stdout io.Writer) error {
	cfg, err := c.Build(logger)
	if err != nil {
		return err
	}
	result, err := schemagen.Check(ctx, cfg)
	if err != nil {
		return err
	}

	if c.DumpIR {
		data, err := json.MarshalIndent(result.File, "", "  ")
		if err != nil {
			return fmt.Errorf("encode IR: %w", err)
		}
		fmt.Fprintf(stdout, "%s\n", data)
		return nil
	}

	fmt.Fprintf(stdout, "✓ Parsed %s: %d declarations\n", result.Config.Input, len(result.File.Declarations))
	fmt.Fprintf(stdout, "✓ Extracted %d definitions\n", len(result.Extraction.Fragments))
	for _, b := range result.Report.Bound {
		if b.ArgList == "" {
			fmt.Fprintf(stdout, "✓ Bound %s to %s\n", b.Operation, b.Args)
			continue
		}
		fmt.Fprintf(stdout, "✓ Bound %s to %s %s\n", b.Operation, b.Args, b.ArgList)
	}
	for _, name := range result.Report.Promoted {
		fmt.Fprintf(stdout, "✓ Promoted %s to input\n", name)
	}
	if n := len(result.Report.Pruned); n > 0 {
		fmt.Fprintf(stdout, "✓ Pruned %d arguments definitions\n", n)
	}
	for _, w := range result.Warnings {
		loc := ""
		if w.Source != nil {
			loc = w.Source.String() + ": "
		}
		fmt.Fprintf(stdout, "! %s%s (%s)\n", loc, w.Message, w.Code)
	}
	return nil
}
