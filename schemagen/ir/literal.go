package ir

// EmbeddedLiteral is a block of GraphQL schema text embedded in the source
// as a tagged template (gql`...`). Its text is passed through verbatim.
type EmbeddedLiteral struct {
	// Tag is the template tag ("gql", "graphql") or the marker comment.
	Tag string

	// RawText is the template body between the backticks.
	RawText string

	// Source location of the template.
	Source Source
}

// Kind returns KindEmbeddedLiteral.
func (d *EmbeddedLiteral) Kind() NodeKind { return KindEmbeddedLiteral }

// DeclName returns the empty string; embedded literals are anonymous.
func (d *EmbeddedLiteral) DeclName() string { return "" }

// Src returns the template source location.
func (d *EmbeddedLiteral) Src() Source { return d.Source }

func (*EmbeddedLiteral) sealed() {}
