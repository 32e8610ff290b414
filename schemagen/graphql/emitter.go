package graphql

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// Nullability selects when a member lowers without the non-null marker.
type Nullability string

const (
	// NullabilityOptional marks every member non-null unless it is
	// declared optional with "?".
	NullabilityOptional Nullability = "optional"

	// NullabilityMaybe additionally treats members typed with an optional
	// wrapper, or with a union including null or undefined, as nullable.
	NullabilityMaybe Nullability = "maybe"
)

// typenameField is the introspection member GraphQL code generators add to
// every object type.
const typenameField = "__typename"

// builtinScalars are the scalars every GraphQL schema defines implicitly.
var builtinScalars = map[string]bool{
	"ID":      true,
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
}

// Options configures lowering.
type Options struct {
	// Nullability defaults to NullabilityOptional.
	Nullability Nullability

	// SkipTypename drops __typename members.
	SkipTypename bool

	// SkipBuiltinScalars drops built-in scalar names from the Scalars
	// declaration.
	SkipBuiltinScalars bool

	// OptionalWrappers defaults to DefaultOptionalWrappers.
	OptionalWrappers []string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Lowered is the result of lowering one declaration.
type Lowered struct {
	// Fragment is schema text, or empty when the declaration contributes none.
	Fragment string

	// Args is set for Query<Op>Args and Mutation<Op>Args declarations.
	Args *ArgsEntry
}

// Emitter lowers declarations to schema fragments. It accumulates
// warnings for shapes mapped to the Unknown scalar.
type Emitter struct {
	opts     Options
	logger   *slog.Logger
	mapper   Mapper
	upper    cases.Caser
	warnings []ir.Warning

	// decl and member locate fallbacks reported by the mapper.
	decl   ir.Declaration
	member string
}

// NewEmitter returns an emitter configured by opts.
func NewEmitter(opts Options) *Emitter {
	if opts.Nullability == "" {
		opts.Nullability = NullabilityOptional
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Emitter{
		opts:   opts,
		logger: logger,
		upper:  cases.Upper(language.Und),
	}
	e.mapper = Mapper{
		OptionalWrappers: opts.OptionalWrappers,
		Fallback:         e.fallback,
	}
	return e
}

// Warnings returns the warnings recorded so far.
func (e *Emitter) Warnings() []ir.Warning {
	return e.warnings
}

func (e *Emitter) fallback(shape ir.Shape, reason string) {
	if e.member == typenameField {
		return
	}
	var name string
	w := ir.Warning{Code: "unknown_type"}
	if e.decl != nil {
		name = e.decl.DeclName()
		w.TypeName = name
		if src := e.decl.Src(); !src.IsZero() {
			w.Source = &src
		}
	}
	if e.member != "" {
		name += "." + e.member
	}
	w.Message = fmt.Sprintf("%s: %s mapped to %s", name, reason, UnknownScalar)
	e.warnings = append(e.warnings, w)

	e.logger.Warn("type mapped to Unknown",
		slog.String("field", name),
		slog.String("reason", reason))
}

// LowerMember lowers a member to a field line "  name: Type!". It returns
// the empty string for members without a name or a type.
func (e *Emitter) LowerMember(m ir.Member) string {
	if m.Name == "" || m.Type == nil {
		return ""
	}
	if e.opts.SkipTypename && m.Name == typenameField {
		return ""
	}

	e.member = m.Name
	defer func() { e.member = "" }()

	shape := m.Type
	nullable := m.Optional
	if e.opts.Nullability == NullabilityMaybe {
		if inner, ok := stripNullish(shape); ok {
			shape = inner
			nullable = true
		}
		if ref, ok := shape.(*ir.ReferenceShape); ok && e.mapper.IsOptionalWrapper(ref.Name) {
			nullable = true
		}
	}

	line := "  " + m.Name + ": " + e.mapper.Map(shape)
	if !nullable {
		line += "!"
	}
	return line
}

// stripNullish removes null and undefined from a union. It reports whether
// any were removed; the returned shape is the single remaining type, or a
// union of the remaining types.
func stripNullish(shape ir.Shape) (ir.Shape, bool) {
	u, ok := shape.(*ir.UnionShape)
	if !ok {
		return shape, false
	}
	var rest []ir.Shape
	for _, t := range u.Types {
		if k, ok := t.(*ir.KeywordShape); ok && (k.Keyword == ir.KeywordNull || k.Keyword == ir.KeywordUndefined) {
			continue
		}
		rest = append(rest, t)
	}
	switch {
	case len(rest) == len(u.Types):
		return shape, false
	case len(rest) == 1:
		return rest[0], true
	default:
		return ir.Union(rest...), true
	}
}

// LowerDeclaration lowers one top-level declaration.
func (e *Emitter) LowerDeclaration(d ir.Declaration) Lowered {
	e.decl = d
	defer func() { e.decl = nil }()

	switch d := d.(type) {
	case *ir.TypeAlias:
		return e.lowerAlias(d)
	case *ir.EnumDeclaration:
		return Lowered{Fragment: e.lowerEnum(d)}
	case *ir.EmbeddedLiteral:
		return Lowered{Fragment: d.RawText + "\n"}
	}
	return Lowered{}
}

// objectMembers returns the members of an object shape, or of the first
// object part of an intersection.
func objectMembers(shape ir.Shape) ([]ir.Member, bool) {
	switch s := shape.(type) {
	case *ir.ObjectShape:
		return s.Members, true
	case *ir.IntersectionShape:
		if obj := s.FirstObject(); obj != nil {
			return obj.Members, true
		}
	}
	return nil, false
}

func (e *Emitter) lowerAlias(d *ir.TypeAlias) Lowered {
	members, ok := objectMembers(d.Shape)
	if !ok {
		shape := "none"
		if d.Shape != nil {
			shape = d.Shape.Kind().String()
		}
		e.logger.Debug("declaration skipped",
			slog.String("name", d.Name),
			slog.String("shape", shape))
		return Lowered{}
	}

	if d.Name == scalarsName {
		return Lowered{Fragment: e.lowerScalars(members)}
	}

	var lines []string
	for _, m := range members {
		if line := e.LowerMember(m); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		e.logger.Debug("declaration has no fields", slog.String("name", d.Name))
		return Lowered{}
	}

	out := Lowered{Fragment: "type " + d.Name + " {\n" + strings.Join(lines, "\n") + "\n}"}
	if key, ok := ParseArgsName(d.Name); ok {
		args := make([]string, len(lines))
		for i, line := range lines {
			args[i] = strings.TrimSpace(line)
		}
		out.Args = &ArgsEntry{
			Key:         key,
			Declaration: d.Name,
			ArgList:     "(" + strings.Join(args, ", ") + ")",
		}
	}
	return out
}

func (e *Emitter) lowerScalars(members []ir.Member) string {
	var lines []string
	for _, m := range members {
		if m.Name == "" {
			continue
		}
		if e.opts.SkipBuiltinScalars && builtinScalars[m.Name] {
			continue
		}
		lines = append(lines, "scalar "+m.Name)
	}
	return strings.Join(lines, "\n")
}

func (e *Emitter) lowerEnum(d *ir.EnumDeclaration) string {
	if len(d.Members) == 0 {
		return ""
	}
	values := make([]string, len(d.Members))
	for i, m := range d.Members {
		values[i] = e.upper.String(m.Name)
	}
	return "enum " + d.Name + " { " + strings.Join(values, ", ") + " }"
}
