package graphql

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrSchemaParse wraps errors from parsing extracted schema text.
var ErrSchemaParse = errors.New("parse schema")

// DefaultIndent is the indentation used by PrintSchema when none is set.
const DefaultIndent = "  "

// ParseSchema parses schema text into a document. name labels positions in
// error messages.
func ParseSchema(name, text string) (*ast.SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: text})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaParse, err)
	}
	return doc, nil
}

// PrintOptions configures PrintSchema.
type PrintOptions struct {
	// Indent defaults to DefaultIndent.
	Indent string

	// Header is emitted first, one "# " comment line per line.
	Header string
}

// PrintSchema formats doc as schema text.
func PrintSchema(doc *ast.SchemaDocument, opts PrintOptions) []byte {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	var buf bytes.Buffer
	if opts.Header != "" {
		for _, line := range strings.Split(strings.TrimRight(opts.Header, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("# "+line, " "))
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	formatter.NewFormatter(&buf, formatter.WithIndent(indent)).FormatSchemaDocument(doc)
	return buf.Bytes()
}
