package gen

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/luca-saggese/graphql-schema-generator/cmd/gqlschemagen/internal/options"
	"github.com/luca-saggese/graphql-schema-generator/schemagen"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/sink"
)

type Cmd struct {
	options.Flags
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	return c.run(ctx, logger, os.Stdout)
}

func (c *Cmd) run(ctx context.Context, logger *slog.Logger, stdout io.Writer) error {
	cfg, err := c.Build(logger)
	if err != nil {
		return err
	}
	// Without an output path the schema goes to stdout.
	if cfg.Output == "" {
		cfg.Sink = sink.NewWriterSink(stdout)
	}
	_, err = schemagen.Generate(ctx, cfg)
	return err
}
