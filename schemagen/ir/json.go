package ir

import json "github.com/goccy/go-json"

// JSON serialization support for IR nodes.
// All nodes include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for TypeAlias.
func (d *TypeAlias) MarshalJSON() ([]byte, error) {
	type Alias TypeAlias
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  "typeAlias",
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for EnumDeclaration.
func (d *EnumDeclaration) MarshalJSON() ([]byte, error) {
	type Alias EnumDeclaration
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  "enum",
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for EmbeddedLiteral.
func (d *EmbeddedLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Tag     string `json:"tag"`
		RawText string `json:"rawText"`
		Source  Source `json:"source"`
	}{
		Kind:    "embeddedLiteral",
		Tag:     d.Tag,
		RawText: d.RawText,
		Source:  d.Source,
	})
}

// MarshalJSON implements json.Marshaler for KeywordShape.
func (s *KeywordShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Keyword string `json:"keyword"`
	}{
		Kind:    "keyword",
		Keyword: s.Keyword.String(),
	})
}

// MarshalJSON implements json.Marshaler for ObjectShape.
func (s *ObjectShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string   `json:"kind"`
		Members []Member `json:"members"`
	}{
		Kind:    "object",
		Members: s.Members,
	})
}

// MarshalJSON implements json.Marshaler for IntersectionShape.
func (s *IntersectionShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string  `json:"kind"`
		Parts []Shape `json:"parts"`
	}{
		Kind:  "intersection",
		Parts: s.Parts,
	})
}

// MarshalJSON implements json.Marshaler for UnionShape.
func (s *UnionShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string  `json:"kind"`
		Types []Shape `json:"types"`
	}{
		Kind:  "union",
		Types: s.Types,
	})
}

// MarshalJSON implements json.Marshaler for ReferenceShape.
func (s *ReferenceShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind          string  `json:"kind"`
		Name          string  `json:"name"`
		TypeArguments []Shape `json:"typeArguments,omitempty"`
	}{
		Kind:          "reference",
		Name:          s.Name,
		TypeArguments: s.TypeArguments,
	})
}

// MarshalJSON implements json.Marshaler for IndexedAccessShape.
func (s *IndexedAccessShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind   string `json:"kind"`
		Object Shape  `json:"object"`
		Index  Shape  `json:"index"`
	}{
		Kind:   "indexedAccess",
		Object: s.Object,
		Index:  s.Index,
	})
}

// MarshalJSON implements json.Marshaler for ArrayShape.
func (s *ArrayShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string `json:"kind"`
		Element Shape  `json:"element"`
	}{
		Kind:    "array",
		Element: s.Element,
	})
}

// MarshalJSON implements json.Marshaler for LiteralShape.
func (s *LiteralShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string `json:"kind"`
		Value any    `json:"value"`
	}{
		Kind:  "literal",
		Value: s.Value,
	})
}

// MarshalJSON implements json.Marshaler for TupleShape.
func (s *TupleShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind     string  `json:"kind"`
		Elements []Shape `json:"elements"`
	}{
		Kind:     "tuple",
		Elements: s.Elements,
	})
}

// MarshalJSON implements json.Marshaler for UnknownShape.
func (s *UnknownShape) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}{
		Kind: "unknown",
		Text: s.Text,
	})
}

// MarshalJSON implements json.Marshaler for Member.
func (m Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name     string `json:"name"`
		Type     Shape  `json:"type"`
		Optional bool   `json:"optional,omitempty"`
		Readonly bool   `json:"readonly,omitempty"`
	}{
		Name:     m.Name,
		Type:     m.Type,
		Optional: m.Optional,
		Readonly: m.Readonly,
	})
}

// MarshalJSON implements json.Marshaler for File.
func (f *File) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Path         string        `json:"path,omitempty"`
		Declarations []Declaration `json:"declarations"`
		Directives   []Directive   `json:"directives,omitempty"`
		Warnings     []Warning     `json:"warnings,omitempty"`
	}{
		Path:         f.Path,
		Declarations: f.Declarations,
		Directives:   f.Directives,
		Warnings:     f.Warnings,
	})
}
