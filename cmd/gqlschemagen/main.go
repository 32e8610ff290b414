package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/luca-saggese/graphql-schema-generator/cmd/gqlschemagen/internal/check"
	"github.com/luca-saggese/graphql-schema-generator/cmd/gqlschemagen/internal/gen"
	"github.com/luca-saggese/graphql-schema-generator/schemagen"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging." short:"v"`

	Gen     gen.Cmd    `cmd:"" default:"withargs" help:"Generate a GraphQL schema from TypeScript types."`
	Check   check.Cmd  `cmd:"" help:"Run the pipeline without writing the schema."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("gqlschemagen"),
		kong.Description("Generate a GraphQL schema from TypeScript type declarations."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gqlschemagen: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 for usage and config errors and 1 for other failures.
func exitCode(err error) int {
	var e *schemagen.Error
	if errors.As(err, &e) && (e.Code == schemagen.CodeUsage || e.Code == schemagen.CodeInvalidConfig) {
		return 2
	}
	return 1
}
