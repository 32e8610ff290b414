package ir

// NodeKind identifies the category of a type-AST node.
type NodeKind int

const (
	// Declaration nodes (appear in File.Declarations)
	KindTypeAlias       NodeKind = iota // type X = ... or interface X { ... }
	KindEnum                            // enum X { ... }
	KindEmbeddedLiteral                 // gql`...` schema text

	// Shape nodes (appear nested in declarations and members)
	KindObject        // { a: T; b?: U }
	KindIntersection  // A & B
	KindUnion         // A | B
	KindKeyword       // string, number, boolean, any, ...
	KindReference     // Name or Name<Args>
	KindIndexedAccess // T["key"]
	KindArray         // T[]
	KindLiteral       // "x", 1, true
	KindTuple         // [A, B]
	KindUnknown       // anything the provider keeps only as text
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindTypeAlias:
		return "TypeAlias"
	case KindEnum:
		return "Enum"
	case KindEmbeddedLiteral:
		return "EmbeddedLiteral"
	case KindObject:
		return "Object"
	case KindIntersection:
		return "Intersection"
	case KindUnion:
		return "Union"
	case KindKeyword:
		return "Keyword"
	case KindReference:
		return "Reference"
	case KindIndexedAccess:
		return "IndexedAccess"
	case KindArray:
		return "Array"
	case KindLiteral:
		return "Literal"
	case KindTuple:
		return "Tuple"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Declaration is a top-level node of a parsed source file.
type Declaration interface {
	// Kind returns the node kind for type switching.
	Kind() NodeKind

	// DeclName returns the declared name. Embedded literals have no name.
	DeclName() string

	// Src returns the source location of the declaration.
	Src() Source

	sealed()
}

// Shape is a type expression: the right-hand side of an alias, or the type
// of a member.
type Shape interface {
	// Kind returns the node kind for type switching.
	Kind() NodeKind

	sealed()
}

// shapeBase seals shape nodes to this package.
type shapeBase struct{}

func (shapeBase) sealed() {}
