package graphql

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

// ErrNoDefinitionsFound is returned when no declaration lowers to schema
// text that survives the rewrite. Arguments declarations alone do not count.
var ErrNoDefinitionsFound = errors.New("no definitions found")

// Fragment is the schema text contributed by one declaration.
type Fragment struct {
	// Declaration is the declaration name, empty for embedded literals.
	Declaration string
	Kind        ir.NodeKind
	Text        string
}

// Extraction is the result of lowering a file.
type Extraction struct {
	// SchemaText is the concatenation of all fragments in source order.
	SchemaText string

	// Args holds the arguments declarations found during lowering.
	Args *ArgsTable

	Fragments []Fragment
	Warnings  []ir.Warning
}

// Extract lowers every declaration of file once, in source order, and
// concatenates the fragments.
func Extract(file *ir.File, opts Options) (*Extraction, error) {
	e := NewEmitter(opts)
	out := &Extraction{Args: NewArgsTable()}

	var texts []string
	defined := false
	for _, d := range file.Declarations {
		lowered := e.LowerDeclaration(d)
		if lowered.Args != nil {
			if !out.Args.Add(*lowered.Args) {
				e.logger.Debug("duplicate arguments declaration ignored",
					slog.String("name", lowered.Args.Declaration),
					slog.String("operation", lowered.Args.Key.String()))
			}
		}
		if lowered.Fragment == "" {
			continue
		}
		out.Fragments = append(out.Fragments, Fragment{
			Declaration: d.DeclName(),
			Kind:        d.Kind(),
			Text:        lowered.Fragment,
		})
		texts = append(texts, lowered.Fragment)
		// Arguments declarations are pruned from the schema.
		if lowered.Args == nil && strings.TrimSpace(lowered.Fragment) != "" {
			defined = true
		}
	}

	out.SchemaText = strings.Join(texts, "\n")
	out.Warnings = e.Warnings()
	if !defined {
		return nil, ErrNoDefinitionsFound
	}
	return out, nil
}
