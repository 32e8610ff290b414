package schemagen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/graphql"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/provider"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/sink"
)

// ConfigDirective is the source directive name carrying option overrides:
//
//	// gqlschema:config nullability=maybe skipTypename
const ConfigDirective = "config"

// DefaultIndent is the number of spaces used to indent fields.
const DefaultIndent = 2

var (
	validate         = validator.New()
	directiveDecoder = schema.NewDecoder()
)

func init() {
	directiveDecoder.IgnoreUnknownKeys(false)
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Config provides options for schema generation.
type Config struct {
	// Input is the TypeScript file to read.
	// Required.
	Input string `yaml:"input" validate:"required"`

	// Source, when set, is parsed instead of reading Input. Input is then
	// only used in source locations.
	Source []byte `yaml:"-" validate:"-"`

	// Output is the schema file to write.
	// When empty and Sink is nil, nothing is written and the schema is
	// only returned in the result.
	Output string `yaml:"output"`

	// Indent is the number of spaces used to indent fields and enum values.
	// Default: 2
	Indent int `yaml:"indent" validate:"min=1,max=8"`

	// Nullability controls which members lower as nullable fields.
	// Valid values: "optional" (default), "maybe".
	Nullability graphql.Nullability `yaml:"nullability" validate:"oneof=optional maybe"`

	// SkipTypename drops __typename members from object types.
	SkipTypename bool `yaml:"skipTypename"`

	// SkipBuiltinScalars drops String, Int, Float, Boolean and ID from the
	// scalars emitted for a Scalars declaration.
	SkipBuiltinScalars bool `yaml:"skipBuiltinScalars"`

	// OptionalWrappers lists the generic reference names unwrapped to their
	// first type argument.
	// Default: ["Maybe"]
	OptionalWrappers []string `yaml:"optionalWrappers" validate:"dive,required,alphanum"`

	// Header is written at the top of the schema as "#" comment lines.
	Header string `yaml:"header"`

	// NoDirectives ignores gqlschema:config directives in the input.
	NoDirectives bool `yaml:"noDirectives"`

	// Overrides take precedence over source directives. The CLI fills them
	// from flags and the Generator from its With methods.
	Overrides Overrides `yaml:"-" validate:"-"`

	// Sink receives the schema. When nil and Output is set, the schema is
	// written to Output through a FilesystemSink.
	Sink sink.OutputSink `yaml:"-" validate:"-"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

// Overrides holds individually set options. Nil fields leave the
// underlying value unchanged.
type Overrides struct {
	Indent             *int     `schema:"indent"`
	Nullability        *string  `schema:"nullability"`
	SkipTypename       *bool    `schema:"skipTypename"`
	SkipBuiltinScalars *bool    `schema:"skipBuiltinScalars"`
	OptionalWrappers   []string `schema:"optionalWrapper"`
	Header             *string  `schema:"header"`
}

func (o Overrides) apply(cfg *Config) {
	if o.Indent != nil {
		cfg.Indent = *o.Indent
	}
	if o.Nullability != nil {
		cfg.Nullability = graphql.Nullability(*o.Nullability)
	}
	if o.SkipTypename != nil {
		cfg.SkipTypename = *o.SkipTypename
	}
	if o.SkipBuiltinScalars != nil {
		cfg.SkipBuiltinScalars = *o.SkipBuiltinScalars
	}
	if o.OptionalWrappers != nil {
		cfg.OptionalWrappers = append([]string(nil), o.OptionalWrappers...)
	}
	if o.Header != nil {
		cfg.Header = *o.Header
	}
}

// merge returns o with every field set in next replacing its own.
func (o Overrides) merge(next Overrides) Overrides {
	if next.Indent != nil {
		o.Indent = next.Indent
	}
	if next.Nullability != nil {
		o.Nullability = next.Nullability
	}
	if next.SkipTypename != nil {
		o.SkipTypename = next.SkipTypename
	}
	if next.SkipBuiltinScalars != nil {
		o.SkipBuiltinScalars = next.SkipBuiltinScalars
	}
	if next.OptionalWrappers != nil {
		o.OptionalWrappers = next.OptionalWrappers
	}
	if next.Header != nil {
		o.Header = next.Header
	}
	return o
}

// LoadConfig reads a YAML config file. Unknown keys are rejected. Relative
// input and output paths are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: CodeInvalidConfig, Message: err.Error(), Err: err}
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, Errorf(CodeInvalidConfig, "%s: %s", path, Classify(err).Message).WithDetail("path", path)
	}

	dir := filepath.Dir(path)
	if cfg.Input != "" && !filepath.IsAbs(cfg.Input) {
		cfg.Input = filepath.Join(dir, cfg.Input)
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data. Empty data yields an empty config.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Code: CodeInvalidConfig, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// DirectiveOverrides decodes the gqlschema:config directives of file.
// Later directives win over earlier ones.
func DirectiveOverrides(file *ir.File) (Overrides, error) {
	var out Overrides
	for _, d := range file.DirectivesNamed(ConfigDirective) {
		values, err := provider.ParseDirectiveArgs(d.Args)
		if err == nil {
			var o Overrides
			if err = directiveDecoder.Decode(&o, values); err == nil {
				out = out.merge(o)
				continue
			}
		}
		return Overrides{}, Errorf(CodeInvalidConfig, "%s: %v", d.Source, err).
			WithDetail("directive", strings.TrimSpace(provider.DirectivePrefix+d.Name+" "+d.Args))
	}
	return out, nil
}

// withDefaults returns a copy of cfg with unset options defaulted.
func (cfg *Config) withDefaults() Config {
	out := *cfg
	if out.Indent == 0 {
		out.Indent = DefaultIndent
	}
	if out.Nullability == "" {
		out.Nullability = graphql.NullabilityOptional
	}
	if out.OptionalWrappers == nil {
		out.OptionalWrappers = append([]string(nil), graphql.DefaultOptionalWrappers...)
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}

// Validate checks cfg after defaults and overrides are applied.
func (cfg *Config) Validate() error {
	eff := cfg.withDefaults()
	cfg.Overrides.apply(&eff)
	return eff.validate()
}

func (cfg *Config) validate() error {
	if err := validate.Struct(cfg); err != nil {
		return Classify(err)
	}
	return nil
}

// resolve applies directives then overrides on top of the defaulted config.
func (cfg *Config) resolve(directives Overrides) (Config, error) {
	eff := cfg.withDefaults()
	directives.apply(&eff)
	cfg.Overrides.apply(&eff)
	if err := eff.validate(); err != nil {
		return Config{}, err
	}
	return eff, nil
}

func (cfg *Config) graphqlOptions() graphql.Options {
	return graphql.Options{
		Nullability:        cfg.Nullability,
		SkipTypename:       cfg.SkipTypename,
		SkipBuiltinScalars: cfg.SkipBuiltinScalars,
		OptionalWrappers:   cfg.OptionalWrappers,
		Logger:             cfg.Logger,
	}
}

func (cfg *Config) printOptions() graphql.PrintOptions {
	return graphql.PrintOptions{
		Indent: strings.Repeat(" ", cfg.Indent),
		Header: cfg.Header,
	}
}

// Generator provides a fluent API for schema generation.
// Create with FromFile() or FromSource() and configure with method chaining.
//
// Example:
//
//	schemagen.FromFile("src/types.ts").
//	    WithNullability(graphql.NullabilityMaybe).
//	    SkipTypename().
//	    ToFile(ctx, "schema.graphql")
//
// Options set on a Generator take precedence over gqlschema:config
// directives in the input.
type Generator struct {
	cfg Config
}

// FromFile creates a Generator reading the TypeScript file at path.
func FromFile(path string) *Generator {
	return &Generator{cfg: Config{Input: path}}
}

// FromSource creates a Generator for in-memory TypeScript source. The name
// is used in source locations and error messages.
func FromSource(name string, src []byte) *Generator {
	return &Generator{cfg: Config{Input: name, Source: src}}
}

// FromConfig creates a Generator starting from a copy of cfg.
func FromConfig(cfg *Config) *Generator {
	return &Generator{cfg: *cfg}
}

// WithIndent sets the number of spaces used for indentation.
func (g *Generator) WithIndent(spaces int) *Generator {
	g.cfg.Overrides.Indent = &spaces
	return g
}

// WithNullability sets the nullability mode.
// Valid values: "optional" (default), "maybe".
func (g *Generator) WithNullability(n graphql.Nullability) *Generator {
	s := string(n)
	g.cfg.Overrides.Nullability = &s
	return g
}

// SkipTypename drops __typename members.
func (g *Generator) SkipTypename() *Generator {
	skip := true
	g.cfg.Overrides.SkipTypename = &skip
	return g
}

// SkipBuiltinScalars drops built-in scalar names from Scalars declarations.
func (g *Generator) SkipBuiltinScalars() *Generator {
	skip := true
	g.cfg.Overrides.SkipBuiltinScalars = &skip
	return g
}

// OptionalWrappers replaces the generic names unwrapped to their argument.
func (g *Generator) OptionalWrappers(names ...string) *Generator {
	g.cfg.Overrides.OptionalWrappers = append([]string{}, names...)
	return g
}

// Header sets the comment written at the top of the schema.
func (g *Generator) Header(text string) *Generator {
	g.cfg.Overrides.Header = &text
	return g
}

// IgnoreDirectives disables gqlschema:config directives in the input.
func (g *Generator) IgnoreDirectives() *Generator {
	g.cfg.NoDirectives = true
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// ToSink generates the schema and writes it to s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*GenerateResult, error) {
	g.cfg.Sink = s
	return Generate(ctx, &g.cfg)
}

// ToFile generates the schema and writes it to path.
// This is a terminal operation that writes to disk.
func (g *Generator) ToFile(ctx context.Context, path string) (*GenerateResult, error) {
	g.cfg.Output = path
	g.cfg.Sink = nil
	return Generate(ctx, &g.cfg)
}

// Generate returns the schema in memory without writing it.
// Use ToFile() to write to disk instead.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	return Check(ctx, &g.cfg)
}
