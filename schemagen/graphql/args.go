package graphql

import (
	"regexp"
	"strings"
)

// OperationKind identifies a root operation type.
type OperationKind int

const (
	OperationQuery OperationKind = iota
	OperationMutation
)

// String returns the root type name of the operation kind.
func (k OperationKind) String() string {
	switch k {
	case OperationQuery:
		return "Query"
	case OperationMutation:
		return "Mutation"
	default:
		return "Invalid"
	}
}

// OperationKey identifies one operation field. Name is lower-cased so that
// lookups are case-insensitive.
type OperationKey struct {
	Kind OperationKind
	Name string
}

// KeyFor returns the key of the field named field on the root type of kind.
func KeyFor(kind OperationKind, field string) OperationKey {
	return OperationKey{Kind: kind, Name: strings.ToLower(field)}
}

func (k OperationKey) String() string {
	return k.Kind.String() + "." + k.Name
}

var argsNamePattern = regexp.MustCompile(`(?i)^(query|mutation)([a-z_][a-z0-9_]*)args$`)

// ParseArgsName recognizes the Query<Op>Args and Mutation<Op>Args naming
// convention. The whole name is matched case-insensitively; the returned key
// carries the lower-cased operation name.
func ParseArgsName(name string) (OperationKey, bool) {
	m := argsNamePattern.FindStringSubmatch(name)
	if m == nil {
		return OperationKey{}, false
	}
	kind := OperationQuery
	if strings.EqualFold(m[1], "Mutation") {
		kind = OperationMutation
	}
	return KeyFor(kind, m[2]), true
}

// ArgsEntry is one arguments declaration.
type ArgsEntry struct {
	Key OperationKey

	// Declaration is the declared name, e.g. "QuerygetUserArgs".
	Declaration string

	// ArgList is the lowered argument list, e.g. "(id: String!)". Empty for
	// entries found only in the parsed schema.
	ArgList string
}

// ArgsTable maps operations to their arguments declarations. The first
// entry registered for a key wins.
type ArgsTable struct {
	entries []ArgsEntry
	index   map[OperationKey]int
}

// NewArgsTable returns an empty table.
func NewArgsTable() *ArgsTable {
	return &ArgsTable{index: make(map[OperationKey]int)}
}

// Add registers e unless an entry with the same key exists. It reports
// whether e was added.
func (t *ArgsTable) Add(e ArgsEntry) bool {
	if t.index == nil {
		t.index = make(map[OperationKey]int)
	}
	if _, ok := t.index[e.Key]; ok {
		return false
	}
	t.index[e.Key] = len(t.entries)
	t.entries = append(t.entries, e)
	return true
}

// Lookup returns the entry for key. It is safe to call on a nil table.
func (t *ArgsTable) Lookup(key OperationKey) (ArgsEntry, bool) {
	if t == nil {
		return ArgsEntry{}, false
	}
	i, ok := t.index[key]
	if !ok {
		return ArgsEntry{}, false
	}
	return t.entries[i], true
}

// Entries returns the entries in registration order.
func (t *ArgsTable) Entries() []ArgsEntry {
	if t == nil {
		return nil
	}
	return append([]ArgsEntry(nil), t.entries...)
}

// Len returns the number of entries.
func (t *ArgsTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
