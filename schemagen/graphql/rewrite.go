package graphql

import (
	"log/slog"
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// Binding records an operation field whose arguments were replaced.
type Binding struct {
	// Operation is "Query.field" or "Mutation.field".
	Operation string

	// Args is the arguments definition the field was bound to.
	Args string

	// ArgList is the lowered argument list of Args, e.g. "(id: String!)".
	// Empty when the definition came from a schema literal.
	ArgList string
}

// RewriteReport summarizes a Rewrite pass.
type RewriteReport struct {
	Bound    []Binding
	Promoted []string
	Pruned   []string

	// Merged counts duplicate root definitions and root extensions folded
	// into the first root definition.
	Merged int
}

// RewriteOptions configures Rewrite.
type RewriteOptions struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type rewriter struct {
	doc    *ast.SchemaDocument
	args   *ArgsTable
	logger *slog.Logger
	report *RewriteReport
}

// Rewrite normalizes doc in place:
//
//  1. duplicate Query and Mutation object types are merged into the first;
//  2. Query is moved to the end of the definitions;
//  3. Mutation fields, then Query fields, take their arguments from the
//     matching Mutation<Op>Args or Query<Op>Args definition, and object
//     types used as argument types become input types;
//  4. every Query<Op>Args and Mutation<Op>Args definition is removed.
//
// Arguments definitions are matched in document order: when two
// definitions name the same operation, the earlier one wins. args is not
// modified; it supplies the lowered argument lists of the definitions it
// knows. Running Rewrite on its own output changes nothing.
func Rewrite(doc *ast.SchemaDocument, args *ArgsTable, opts RewriteOptions) *RewriteReport {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &rewriter{
		doc:    doc,
		args:   NewArgsTable(),
		logger: logger,
		report: &RewriteReport{},
	}
	for _, def := range doc.Definitions {
		key, ok := ParseArgsName(def.Name)
		if !ok {
			continue
		}
		entry := ArgsEntry{Key: key, Declaration: def.Name}
		if known, ok := args.Lookup(key); ok && known.Declaration == def.Name {
			entry.ArgList = known.ArgList
		}
		if !r.args.Add(entry) {
			logger.Debug("arguments definition shadowed",
				slog.String("name", def.Name),
				slog.String("operation", key.String()))
		}
	}

	r.mergeRoot(OperationQuery)
	r.mergeRoot(OperationMutation)
	r.repositionQuery()
	r.bind(OperationMutation)
	r.bind(OperationQuery)
	r.prune()
	return r.report
}

// objectIndex returns the index of the first object definition named name.
func (r *rewriter) objectIndex(name string) int {
	return slices.IndexFunc(r.doc.Definitions, func(d *ast.Definition) bool {
		return d.Kind == ast.Object && d.Name == name
	})
}

func (r *rewriter) mergeRoot(kind OperationKind) {
	name := kind.String()
	first := r.objectIndex(name)
	if first < 0 {
		return
	}
	root := r.doc.Definitions[first]

	defs := r.doc.Definitions[:first+1]
	for _, d := range r.doc.Definitions[first+1:] {
		if d.Kind == ast.Object && d.Name == name {
			r.mergeFields(root, d)
			continue
		}
		defs = append(defs, d)
	}
	r.doc.Definitions = defs

	var extensions ast.DefinitionList
	for _, d := range r.doc.Extensions {
		if d.Kind == ast.Object && d.Name == name {
			r.mergeFields(root, d)
			continue
		}
		extensions = append(extensions, d)
	}
	r.doc.Extensions = extensions
}

func (r *rewriter) mergeFields(root, dup *ast.Definition) {
	for _, f := range dup.Fields {
		if root.Fields.ForName(f.Name) == nil {
			root.Fields = append(root.Fields, f)
		}
	}
	r.report.Merged++
	r.logger.Debug("merged root definition", slog.String("name", root.Name))
}

func (r *rewriter) repositionQuery() {
	i := r.objectIndex(OperationQuery.String())
	if i < 0 {
		return
	}
	query := r.doc.Definitions[i]
	r.doc.Definitions = append(slices.Delete(r.doc.Definitions, i, i+1), query)
}

// bind replaces the arguments of every field of the root type of kind that
// has an arguments definition, and promotes object types used by those
// arguments.
func (r *rewriter) bind(kind OperationKind) {
	i := r.objectIndex(kind.String())
	if i < 0 {
		return
	}
	root := r.doc.Definitions[i]

	for _, field := range root.Fields {
		entry, ok := r.args.Lookup(KeyFor(kind, field.Name))
		if !ok {
			continue
		}
		j := slices.IndexFunc(r.doc.Definitions, func(d *ast.Definition) bool {
			return d.Name == entry.Declaration
		})
		if j < 0 {
			continue
		}
		argsDef := r.doc.Definitions[j]

		field.Arguments = argumentsFromFields(argsDef.Fields)
		binding := Binding{
			Operation: kind.String() + "." + field.Name,
			Args:      argsDef.Name,
			ArgList:   entry.ArgList,
		}
		r.report.Bound = append(r.report.Bound, binding)
		r.logger.Debug("bound arguments",
			slog.String("operation", binding.Operation),
			slog.String("args", binding.Args))

		for _, arg := range field.Arguments {
			r.promote(arg.Type.Name())
		}
	}
}

func argumentsFromFields(fields ast.FieldList) ast.ArgumentDefinitionList {
	args := make(ast.ArgumentDefinitionList, 0, len(fields))
	for _, f := range fields {
		args = append(args, &ast.ArgumentDefinition{
			Description:  f.Description,
			Name:         f.Name,
			DefaultValue: f.DefaultValue,
			Type:         f.Type,
			Directives:   f.Directives,
			Position:     f.Position,
		})
	}
	return args
}

// promote replaces the object type named name with an input type carrying
// the same fields. Root operation types are never promoted.
func (r *rewriter) promote(name string) {
	if name == OperationQuery.String() || name == OperationMutation.String() {
		return
	}
	i := r.objectIndex(name)
	if i < 0 {
		return
	}
	obj := r.doc.Definitions[i]
	r.doc.Definitions[i] = &ast.Definition{
		Kind:        ast.InputObject,
		Description: obj.Description,
		Name:        obj.Name,
		Directives:  obj.Directives,
		Fields:      obj.Fields,
		Position:    obj.Position,
	}
	r.report.Promoted = append(r.report.Promoted, name)
	r.logger.Debug("promoted to input type", slog.String("name", name))
}

func (r *rewriter) prune() {
	r.doc.Definitions = slices.DeleteFunc(r.doc.Definitions, func(d *ast.Definition) bool {
		if _, ok := ParseArgsName(d.Name); !ok {
			return false
		}
		r.report.Pruned = append(r.report.Pruned, d.Name)
		r.logger.Debug("pruned arguments definition", slog.String("name", d.Name))
		return true
	})
}
