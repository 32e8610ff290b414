package ir

// EnumDeclaration represents a TypeScript enum (or const enum).
type EnumDeclaration struct {
	// Name is the enum identifier.
	Name string `json:"name"`

	// Members contains the enum members in source order.
	Members []EnumMember `json:"members"`

	// Const is true for "const enum".
	Const bool `json:"const,omitempty"`

	// Source location in the input file.
	Source Source `json:"source"`
}

// Kind returns KindEnum.
func (d *EnumDeclaration) Kind() NodeKind { return KindEnum }

// DeclName returns the enum name.
func (d *EnumDeclaration) DeclName() string { return d.Name }

// Src returns the enum source location.
func (d *EnumDeclaration) Src() Source { return d.Source }

func (*EnumDeclaration) sealed() {}

// EnumMember represents a single enum member.
type EnumMember struct {
	// Name is the member identifier as written in the source.
	Name string `json:"name"`

	// Value is the initializer when it is a literal: string or float64.
	// nil when the member has no initializer or a computed one.
	Value any `json:"value,omitempty"`
}
