package graphql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

// summarize renders the parts of a document the rewriter is responsible for
// in a stable, formatter-independent form: one line per definition, followed
// by one indented line per field or enum value.
func summarize(doc *ast.SchemaDocument) string {
	var b strings.Builder
	write := func(defs ast.DefinitionList, extend bool) {
		for _, d := range defs {
			if extend {
				b.WriteString("extend ")
			}
			b.WriteString(kindKeyword(d.Kind) + " " + d.Name + "\n")
			for _, f := range d.Fields {
				b.WriteString("  " + f.Name)
				if len(f.Arguments) > 0 {
					args := make([]string, len(f.Arguments))
					for i, a := range f.Arguments {
						args[i] = a.Name + ": " + a.Type.String()
					}
					b.WriteString("(" + strings.Join(args, ", ") + ")")
				}
				b.WriteString(": " + f.Type.String() + "\n")
			}
			for _, v := range d.EnumValues {
				b.WriteString("  " + v.Name + "\n")
			}
		}
	}
	write(doc.Definitions, false)
	write(doc.Extensions, true)
	return b.String()
}

func kindKeyword(k ast.DefinitionKind) string {
	switch k {
	case ast.Object:
		return "type"
	case ast.InputObject:
		return "input"
	case ast.Scalar:
		return "scalar"
	case ast.Enum:
		return "enum"
	case ast.Interface:
		return "interface"
	case ast.Union:
		return "union"
	}
	return string(k)
}

func mustParse(t *testing.T, sdl string) *ast.SchemaDocument {
	t.Helper()
	doc, err := ParseSchema("test.graphql", sdl)
	require.NoError(t, err)
	return doc
}

func definitionNames(doc *ast.SchemaDocument) []string {
	names := make([]string, len(doc.Definitions))
	for i, d := range doc.Definitions {
		names[i] = d.Name
	}
	return names
}
