package ir

// TypeAlias represents a type alias (type X = ...) or an interface
// declaration, which the provider normalizes to an alias of an object shape.
type TypeAlias struct {
	// Name is the declared identifier.
	Name string `json:"name"`

	// TypeParameters holds generic parameter names, in declaration order.
	// Constraints and defaults are not preserved.
	TypeParameters []string `json:"typeParameters,omitempty"`

	// Shape is the aliased type expression. Never nil for a parsed alias.
	Shape Shape `json:"shape"`

	// Extends lists heritage clauses of an interface declaration.
	Extends []Shape `json:"extends,omitempty"`

	// Interface is true when the declaration used the interface keyword.
	Interface bool `json:"interface,omitempty"`

	// Source location in the input file.
	Source Source `json:"source"`
}

// Kind returns KindTypeAlias.
func (d *TypeAlias) Kind() NodeKind { return KindTypeAlias }

// DeclName returns the alias name.
func (d *TypeAlias) DeclName() string { return d.Name }

// Src returns the alias source location.
func (d *TypeAlias) Src() Source { return d.Source }

func (*TypeAlias) sealed() {}
