package graphql

import (
	"slices"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// UnknownScalar is the type name produced for shapes the mapper does not
// recognize.
const UnknownScalar = "Unknown"

// Names with special meaning to the mapper.
const (
	scalarsName = "Scalars"
	arrayName   = "Array"
)

// DefaultOptionalWrappers lists the generic references unwrapped by default.
var DefaultOptionalWrappers = []string{"Maybe"}

// Mapper maps type shapes to GraphQL type names. The zero value uses
// DefaultOptionalWrappers and ignores fallbacks.
type Mapper struct {
	// OptionalWrappers are generic references whose single argument is
	// mapped in their place, e.g. Maybe<T> maps like T.
	OptionalWrappers []string

	// Fallback, if set, is called for every shape mapped to UnknownScalar
	// with a short description of the shape.
	Fallback func(shape ir.Shape, reason string)
}

// MapType maps a shape with the default mapper.
func MapType(shape ir.Shape) string {
	var m Mapper
	return m.Map(shape)
}

// IsOptionalWrapper reports whether name is one of the mapper's optional
// wrappers.
func (m *Mapper) IsOptionalWrapper(name string) bool {
	if len(m.OptionalWrappers) == 0 {
		return slices.Contains(DefaultOptionalWrappers, name)
	}
	return slices.Contains(m.OptionalWrappers, name)
}

// Map returns the GraphQL type name for shape. It never fails: shapes it
// does not recognize map to UnknownScalar.
func (m *Mapper) Map(shape ir.Shape) string {
	switch s := shape.(type) {
	case *ir.KeywordShape:
		switch s.Keyword {
		case ir.KeywordString, ir.KeywordAny:
			return "String"
		case ir.KeywordNumber:
			return "Int"
		case ir.KeywordBoolean:
			return "Boolean"
		}
		return m.unknown(shape, "keyword "+s.Keyword.String())

	case *ir.ObjectShape:
		if len(s.Members) == 0 {
			return "String"
		}
		return m.unknown(shape, "anonymous object type")

	case *ir.ReferenceShape:
		return m.mapReference(s)

	case *ir.ArrayShape:
		return "[" + m.Map(s.Element) + "]"

	case *ir.IndexedAccessShape:
		if inner, ok := s.Object.(*ir.IndexedAccessShape); ok {
			return m.Map(inner)
		}
		name := s.ObjectName()
		if name == scalarsName {
			if key, ok := s.LiteralKey(); ok {
				return key
			}
		}
		if name == "" {
			return m.unknown(shape, "indexed access on a non-reference type")
		}
		return name

	case *ir.UnknownShape:
		return m.unknown(shape, s.Text+" type")

	case nil:
		return m.unknown(shape, "missing type")
	}

	return m.unknown(shape, shape.Kind().String()+" type")
}

func (m *Mapper) mapReference(s *ir.ReferenceShape) string {
	switch {
	case s.Name == scalarsName:
		if len(s.TypeArguments) > 0 {
			if lit, ok := s.TypeArguments[0].(*ir.LiteralShape); ok {
				if v, ok := lit.Value.(string); ok {
					return v
				}
			}
		}
		return m.unknown(s, "Scalars reference without a string literal argument")

	case m.IsOptionalWrapper(s.Name):
		if len(s.TypeArguments) == 0 {
			return m.unknown(s, s.Name+" without a type argument")
		}
		return m.Map(s.TypeArguments[0])

	case s.Name == arrayName:
		if len(s.TypeArguments) == 0 {
			return m.unknown(s, "Array without a type argument")
		}
		return "[" + m.Map(s.TypeArguments[0]) + "]"
	}
	return s.Name
}

func (m *Mapper) unknown(shape ir.Shape, reason string) string {
	if m.Fallback != nil {
		m.Fallback(shape, reason)
	}
	return UnknownScalar
}
