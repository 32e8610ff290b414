package ir

// Keyword identifies a TypeScript keyword type.
type Keyword int

const (
	KeywordString Keyword = iota
	KeywordNumber
	KeywordBoolean
	KeywordAny
	KeywordUnknown
	KeywordNull
	KeywordUndefined
	KeywordNever
	KeywordVoid
	KeywordObject
	KeywordBigInt
	KeywordSymbol
)

var keywordNames = [...]string{
	KeywordString:    "string",
	KeywordNumber:    "number",
	KeywordBoolean:   "boolean",
	KeywordAny:       "any",
	KeywordUnknown:   "unknown",
	KeywordNull:      "null",
	KeywordUndefined: "undefined",
	KeywordNever:     "never",
	KeywordVoid:      "void",
	KeywordObject:    "object",
	KeywordBigInt:    "bigint",
	KeywordSymbol:    "symbol",
}

// String returns the keyword as written in TypeScript source.
func (k Keyword) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return "invalid"
}

// LookupKeyword returns the keyword for a TypeScript keyword type name.
func LookupKeyword(name string) (Keyword, bool) {
	for k, n := range keywordNames {
		if n == name {
			return Keyword(k), true
		}
	}
	return 0, false
}

// KeywordShape represents a keyword type such as string or number.
type KeywordShape struct {
	shapeBase
	Keyword Keyword
}

// Kind returns KindKeyword.
func (s *KeywordShape) Kind() NodeKind { return KindKeyword }

// Convenience constructors for common keywords.

// String returns a KeywordShape for string.
func String() *KeywordShape { return &KeywordShape{Keyword: KeywordString} }

// Number returns a KeywordShape for number.
func Number() *KeywordShape { return &KeywordShape{Keyword: KeywordNumber} }

// Boolean returns a KeywordShape for boolean.
func Boolean() *KeywordShape { return &KeywordShape{Keyword: KeywordBoolean} }

// Any returns a KeywordShape for any.
func Any() *KeywordShape { return &KeywordShape{Keyword: KeywordAny} }

// Null returns a KeywordShape for null.
func Null() *KeywordShape { return &KeywordShape{Keyword: KeywordNull} }
