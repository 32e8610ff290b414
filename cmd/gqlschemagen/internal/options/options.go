// Package options holds the flags shared by the gen and check commands.
package options

import (
	"log/slog"

	"github.com/luca-saggese/graphql-schema-generator/schemagen"
)

// Flags configure a generation run. Flag values win over the config file
// and over gqlschema:config directives in the input.
type Flags struct {
	Input              string   `help:"TypeScript file to read." short:"i" type:"path"`
	Output             string   `help:"Schema file to write (default: stdout)." short:"o" type:"path"`
	Config             string   `help:"YAML config file." short:"c" type:"path"`
	Nullability        string   `help:"Nullability mode: optional or maybe." placeholder:"MODE"`
	SkipTypename       bool     `help:"Drop __typename members."`
	SkipBuiltinScalars bool     `help:"Drop built-in scalars from the Scalars declaration."`
	OptionalWrapper    []string `help:"Generic names unwrapped to their argument (default: Maybe)." placeholder:"NAME"`
	Indent             int      `help:"Spaces per indentation level (default: 2)."`
	Header             string   `help:"Comment written at the top of the schema."`
	NoDirectives       bool     `help:"Ignore gqlschema:config directives in the input."`
}

// Build builds the generator config: the config file when given, with
// flags applied on top.
func (f *Flags) Build(logger *slog.Logger) (*schemagen.Config, error) {
	cfg := &schemagen.Config{}
	if f.Config != "" {
		loaded, err := schemagen.LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Input != "" {
		cfg.Input = f.Input
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.NoDirectives {
		cfg.NoDirectives = true
	}

	o := &cfg.Overrides
	if f.Nullability != "" {
		o.Nullability = &f.Nullability
	}
	if f.SkipTypename {
		o.SkipTypename = &f.SkipTypename
	}
	if f.SkipBuiltinScalars {
		o.SkipBuiltinScalars = &f.SkipBuiltinScalars
	}
	if len(f.OptionalWrapper) > 0 {
		o.OptionalWrappers = f.OptionalWrapper
	}
	if f.Indent != 0 {
		o.Indent = &f.Indent
	}
	if f.Header != "" {
		o.Header = &f.Header
	}

	cfg.Logger = logger
	return cfg, nil
}
