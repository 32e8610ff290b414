package ir

// Member is a named, typed property of an object shape.
type Member struct {
	// Name is the property name. Quoted names are stored unquoted.
	Name string

	// Type is the annotated type. nil when the member has no annotation.
	Type Shape

	// Optional is true when the property is marked with "?".
	Optional bool

	// Readonly is true when the property carries the readonly modifier.
	Readonly bool
}

// ObjectShape represents an object type literal. Index signatures, call
// signatures, mapped members and methods are not preserved.
type ObjectShape struct {
	shapeBase
	Members []Member
}

// Kind returns KindObject.
func (s *ObjectShape) Kind() NodeKind { return KindObject }

// Object returns an ObjectShape with the given members.
func Object(members ...Member) *ObjectShape {
	return &ObjectShape{Members: members}
}

// IntersectionShape represents A & B & ...
type IntersectionShape struct {
	shapeBase
	Parts []Shape
}

// Kind returns KindIntersection.
func (s *IntersectionShape) Kind() NodeKind { return KindIntersection }

// Intersection returns an IntersectionShape of the given parts.
func Intersection(parts ...Shape) *IntersectionShape {
	return &IntersectionShape{Parts: parts}
}

// FirstObject returns the first part that is an object shape, or nil.
// Only direct parts are considered.
func (s *IntersectionShape) FirstObject() *ObjectShape {
	for _, p := range s.Parts {
		if o, ok := p.(*ObjectShape); ok {
			return o
		}
	}
	return nil
}

// UnionShape represents A | B | ...
type UnionShape struct {
	shapeBase
	Types []Shape
}

// Kind returns KindUnion.
func (s *UnionShape) Kind() NodeKind { return KindUnion }

// Union returns a UnionShape of the given types.
func Union(types ...Shape) *UnionShape {
	return &UnionShape{Types: types}
}

// ReferenceShape represents a reference to a named type, possibly generic.
type ReferenceShape struct {
	shapeBase

	// Name is the referenced name. Qualified names keep their dots ("ns.T").
	Name string

	// TypeArguments holds generic arguments in order.
	TypeArguments []Shape
}

// Kind returns KindReference.
func (s *ReferenceShape) Kind() NodeKind { return KindReference }

// Ref returns a ReferenceShape for a named type with optional type arguments.
func Ref(name string, args ...Shape) *ReferenceShape {
	return &ReferenceShape{Name: name, TypeArguments: args}
}

// IndexedAccessShape represents Object[Index], e.g. Scalars["ID"].
type IndexedAccessShape struct {
	shapeBase
	Object Shape
	Index  Shape
}

// Kind returns KindIndexedAccess.
func (s *IndexedAccessShape) Kind() NodeKind { return KindIndexedAccess }

// Index returns an IndexedAccessShape for object[index].
func Index(object, index Shape) *IndexedAccessShape {
	return &IndexedAccessShape{Object: object, Index: index}
}

// ObjectName returns the name of the indexed type when it is a plain
// reference, or "" otherwise.
func (s *IndexedAccessShape) ObjectName() string {
	if r, ok := s.Object.(*ReferenceShape); ok {
		return r.Name
	}
	return ""
}

// LiteralKey returns the index when it is a string literal.
func (s *IndexedAccessShape) LiteralKey() (string, bool) {
	if l, ok := s.Index.(*LiteralShape); ok {
		if v, ok := l.Value.(string); ok {
			return v, true
		}
	}
	return "", false
}

// ArrayShape represents the T[] shorthand.
type ArrayShape struct {
	shapeBase
	Element Shape
}

// Kind returns KindArray.
func (s *ArrayShape) Kind() NodeKind { return KindArray }

// Array returns an ArrayShape of element.
func Array(element Shape) *ArrayShape {
	return &ArrayShape{Element: element}
}

// LiteralShape represents a literal type. Value is a string, float64 or bool.
// Template literal types are kept as their raw string.
type LiteralShape struct {
	shapeBase
	Value any
}

// Kind returns KindLiteral.
func (s *LiteralShape) Kind() NodeKind { return KindLiteral }

// Literal returns a LiteralShape holding v.
func Literal(v any) *LiteralShape {
	return &LiteralShape{Value: v}
}

// TupleShape represents [A, B, ...].
type TupleShape struct {
	shapeBase
	Elements []Shape
}

// Kind returns KindTuple.
func (s *TupleShape) Kind() NodeKind { return KindTuple }

// UnknownShape is a type expression the provider parsed but does not model:
// function, conditional, mapped, keyof and typeof types.
type UnknownShape struct {
	shapeBase

	// Text is a short description of the construct (e.g. "function").
	Text string
}

// Kind returns KindUnknown.
func (s *UnknownShape) Kind() NodeKind { return KindUnknown }
