package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/ir"
)

func TestExtract_SourceOrder(t *testing.T) {
	file := &ir.File{}
	file.AddDeclaration(&ir.TypeAlias{Name: "Scalars", Shape: ir.Object(
		ir.Member{Name: "DateTime", Type: ir.String()},
	)})
	file.AddDeclaration(&ir.EmbeddedLiteral{Tag: "gql", RawText: "type Post { id: ID! }"})
	file.AddDeclaration(&ir.TypeAlias{Name: "User", Shape: ir.Object(
		ir.Member{Name: "id", Type: ir.String()},
	)})
	file.AddDeclaration(&ir.EnumDeclaration{Name: "Role", Members: []ir.EnumMember{{Name: "ADMIN"}}})

	got, err := Extract(file, Options{Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t,
		"scalar DateTime\n"+
			"type Post { id: ID! }\n\n"+
			"type User {\n  id: String!\n}\n"+
			"enum Role { ADMIN }",
		got.SchemaText)

	require.Len(t, got.Fragments, 4)
	assert.Equal(t, "Scalars", got.Fragments[0].Declaration)
	assert.Equal(t, ir.KindEmbeddedLiteral, got.Fragments[1].Kind)
	assert.Equal(t, "", got.Fragments[1].Declaration)
	assert.Equal(t, ir.KindEnum, got.Fragments[3].Kind)
	assert.Equal(t, 0, got.Args.Len())
}

func TestExtract_ArgsTable(t *testing.T) {
	file := &ir.File{}
	file.AddDeclaration(&ir.TypeAlias{Name: "QueryUserArgs", Shape: ir.Object(
		ir.Member{Name: "id", Type: ir.String()},
	)})
	file.AddDeclaration(&ir.TypeAlias{Name: "QueryuserArgs", Shape: ir.Object(
		ir.Member{Name: "other", Type: ir.String()},
	)})
	file.AddDeclaration(&ir.TypeAlias{Name: "MutationDeleteArgs", Shape: ir.Object(
		ir.Member{Name: "id", Type: ir.String()},
	)})

	got, err := Extract(file, Options{Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Args.Len())
	entry, ok := got.Args.Lookup(KeyFor(OperationQuery, "user"))
	require.True(t, ok)
	assert.Equal(t, "QueryUserArgs", entry.Declaration)
	assert.Equal(t, "(id: String!)", entry.ArgList)

	_, ok = got.Args.Lookup(KeyFor(OperationMutation, "delete"))
	assert.True(t, ok)

	// Arguments declarations still contribute their fragments.
	assert.Len(t, got.Fragments, 3)
}

func TestExtract_NoDefinitionsFound(t *testing.T) {
	tests := []struct {
		name  string
		decls []ir.Declaration
	}{
		{"empty file", nil},
		{"only empty alias", []ir.Declaration{&ir.TypeAlias{Name: "Empty", Shape: ir.Object()}}},
		{"only unions", []ir.Declaration{&ir.TypeAlias{Name: "U", Shape: ir.Union(ir.String(), ir.Number())}}},
		{"blank literal", []ir.Declaration{&ir.EmbeddedLiteral{Tag: "gql", RawText: "  \n  "}}},
		{"only arguments declarations", []ir.Declaration{
			&ir.TypeAlias{Name: "QuerygetUserArgs", Shape: ir.Object(ir.Member{Name: "id", Type: ir.String()})},
			&ir.TypeAlias{Name: "MutationSaveArgs", Shape: ir.Object(ir.Member{Name: "force", Type: ir.Boolean()})},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(&ir.File{Declarations: tt.decls}, Options{Logger: quietLogger()})
			assert.ErrorIs(t, err, ErrNoDefinitionsFound)
			assert.Nil(t, got)
		})
	}
}

func TestExtract_ZeroMemberAliasOmitted(t *testing.T) {
	file := &ir.File{}
	file.AddDeclaration(&ir.TypeAlias{Name: "Empty", Shape: ir.Object()})
	file.AddDeclaration(&ir.TypeAlias{Name: "User", Shape: ir.Object(ir.Member{Name: "id", Type: ir.String()})})

	got, err := Extract(file, Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, "type User {\n  id: String!\n}", got.SchemaText)
}

func TestExtract_CollectsWarnings(t *testing.T) {
	file := &ir.File{}
	file.AddDeclaration(&ir.TypeAlias{Name: "User", Shape: ir.Object(
		ir.Member{Name: "meta", Type: ir.Object(ir.Member{Name: "a", Type: ir.String()})},
	)})

	got, err := Extract(file, Options{Logger: quietLogger()})
	require.NoError(t, err)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, "User.meta: anonymous object type mapped to Unknown", got.Warnings[0].Message)
}
