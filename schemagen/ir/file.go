package ir

// File represents a parsed input file: its declarations in source order.
type File struct {
	// Path is the input path, if known.
	Path string

	// Declarations contains top-level declarations in source order.
	// Consumers that concatenate output rely on this ordering.
	Declarations []Declaration

	// Directives contains gqlschema comment directives in source order.
	Directives []Directive

	// Warnings contains non-fatal issues encountered during parsing.
	Warnings []Warning
}

// AddDeclaration appends a declaration to the file.
func (f *File) AddDeclaration(d Declaration) {
	f.Declarations = append(f.Declarations, d)
}

// AddDirective appends a directive to the file.
func (f *File) AddDirective(d Directive) {
	f.Directives = append(f.Directives, d)
}

// AddWarning appends a warning to the file.
func (f *File) AddWarning(w Warning) {
	f.Warnings = append(f.Warnings, w)
}

// FindDeclaration returns the first declaration with the given name, or nil.
func (f *File) FindDeclaration(name string) Declaration {
	for _, d := range f.Declarations {
		if d.DeclName() == name {
			return d
		}
	}
	return nil
}

// DirectivesNamed returns the directives with the given name, in order.
func (f *File) DirectivesNamed(name string) []Directive {
	var out []Directive
	for _, d := range f.Directives {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks the file for structural issues.
// Returns all validation errors found (not just the first).
func (f *File) Validate() []error {
	var errs []error

	seen := make(map[string]bool)
	for _, d := range f.Declarations {
		if d.Kind() == KindEmbeddedLiteral {
			continue
		}
		name := d.DeclName()
		if name == "" {
			errs = append(errs, &ValidationError{
				Code:    "empty_name",
				Message: d.Kind().String() + " declaration without a name" + at(d.Src()),
			})
			continue
		}
		if seen[name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_declaration",
				Message: "duplicate declaration name: " + name + at(d.Src()),
			})
		}
		seen[name] = true
	}

	return errs
}

// ValidationError represents a file validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func at(s Source) string {
	if s.IsZero() {
		return ""
	}
	return " at " + s.String()
}
