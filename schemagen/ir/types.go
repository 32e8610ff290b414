// Package ir defines the type AST that the source provider produces from
// TypeScript declarations and that the GraphQL lowering consumes.
package ir

import "strconv"

// Source represents a location in the input file.
type Source struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// Warning represents a non-fatal issue encountered while parsing or lowering.
type Warning struct {
	// Code is a machine-readable warning identifier (e.g. "unknown_type").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Source is the location that triggered the warning, if applicable.
	Source *Source `json:"source,omitempty"`

	// TypeName is the declaration that triggered the warning, if applicable.
	TypeName string `json:"typeName,omitempty"`
}

// Directive is a "// gqlschema:<name> key=value ..." comment found in the source.
type Directive struct {
	// Name is the directive name after the "gqlschema:" prefix (e.g. "config").
	Name string `json:"name"`

	// Args is the raw remainder of the comment line.
	Args string `json:"args"`

	Source Source `json:"source"`
}

// String formats the location as file:line:column, omitting empty parts.
func (s Source) String() string {
	out := s.File
	if s.Line > 0 {
		if out != "" {
			out += ":"
		}
		out += strconv.Itoa(s.Line)
		if s.Column > 0 {
			out += ":" + strconv.Itoa(s.Column)
		}
	}
	return out
}

