package schemagen

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/graphql"
	"github.com/luca-saggese/graphql-schema-generator/schemagen/sink"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const codegenSource = `export type Maybe<T> = T | null;
export type Scalars = {
  ID: string;
  DateTime: any;
};

export type User = {
  __typename?: 'User';
  id: Scalars['ID']['output'];
  email?: Maybe<Scalars['String']['output']>;
  createdAt: Scalars['DateTime']['output'];
};

export type UserInput = {
  email: Scalars['String']['input'];
};

export type Query = {
  __typename?: 'Query';
  user?: Maybe<User>;
};

export type Mutation = {
  __typename?: 'Mutation';
  createUser: User;
};

export type QueryUserArgs = {
  id: Scalars['ID']['input'];
};

export type MutationCreateUserArgs = {
  input: UserInput;
};
`

func writeInput(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.ts")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func parseOutput(t *testing.T, out []byte) *ast.SchemaDocument {
	t.Helper()
	doc, err := graphql.ParseSchema("output.graphql", string(out))
	require.NoError(t, err, "output:\n%s", out)
	return doc
}

func TestGenerate_WritesFile(t *testing.T) {
	input := writeInput(t, codegenSource)
	output := filepath.Join(t.TempDir(), "out", "schema.graphql")

	result, err := Generate(context.Background(), &Config{
		Input:  input,
		Output: output,
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, output, result.Output)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, result.Schema, written)

	doc := parseOutput(t, written)
	var names []string
	for _, def := range doc.Definitions {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"ID", "DateTime", "User", "UserInput", "Mutation", "Query"}, names)

	userInput := doc.Definitions.ForName("UserInput")
	require.NotNil(t, userInput)
	assert.Equal(t, ast.InputObject, userInput.Kind)

	createUser := doc.Definitions.ForName("Mutation").Fields.ForName("createUser")
	require.NotNil(t, createUser)
	require.Len(t, createUser.Arguments, 1)
	assert.Equal(t, "input", createUser.Arguments[0].Name)
	assert.Equal(t, "UserInput!", createUser.Arguments[0].Type.String())

	user := doc.Definitions.ForName("Query").Fields.ForName("user")
	require.NotNil(t, user)
	require.Len(t, user.Arguments, 1)
	assert.Equal(t, "ID!", user.Arguments[0].Type.String())

	assert.NotContains(t, string(written), "Args")
	assert.Len(t, result.Report.Bound, 2)
	assert.Equal(t, []string{"UserInput"}, result.Report.Promoted)
}

func TestGenerate_ScalarsAndEnum(t *testing.T) {
	result, err := FromSource("types.ts", []byte(`export type Scalars = {
  DateTime: string;
};

export type User = {
  id: string;
  name: string;
};

export enum Role {
  Admin,
  User,
}
`)).WithLogger(quietLogger()).Generate(context.Background())
	require.NoError(t, err)

	out := string(result.Schema)
	assert.Contains(t, out, "scalar DateTime")
	assert.Contains(t, out, "  id: String!")

	doc := parseOutput(t, result.Schema)
	role := doc.Definitions.ForName("Role")
	require.NotNil(t, role)
	require.Len(t, role.EnumValues, 2)
	assert.Equal(t, "ADMIN", role.EnumValues[0].Name)
	assert.Equal(t, "USER", role.EnumValues[1].Name)
	assert.Empty(t, result.Output)
}

func TestGenerate_NoDefinitionsWritesNothing(t *testing.T) {
	input := writeInput(t, "export const x = 1;\nfunction f() { return x; }\n")
	output := filepath.Join(t.TempDir(), "schema.graphql")

	_, err := Generate(context.Background(), &Config{
		Input:  input,
		Output: output,
		Logger: quietLogger(),
	})
	require.Error(t, err)
	assert.Equal(t, CodeNoDefinitions, Classify(err).Code)
	assert.ErrorIs(t, err, graphql.ErrNoDefinitionsFound)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "expected no output file, stat error: %v", statErr)
}

func TestGenerate_OnlyArgumentsDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"aliases", "export type QuerygetUserArgs = { id: string };\nexport type MutationSaveArgs = { force?: boolean };\n"},
		{"schema literal", "export const typeDefs = gql`type QueryFindArgs { term: String }`;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, tt.src)
			output := filepath.Join(t.TempDir(), "schema.graphql")

			_, err := Generate(context.Background(), &Config{
				Input:  input,
				Output: output,
				Logger: quietLogger(),
			})
			require.Error(t, err)
			assert.Equal(t, CodeNoDefinitions, Classify(err).Code)
			assert.ErrorIs(t, err, graphql.ErrNoDefinitionsFound)

			_, statErr := os.Stat(output)
			assert.True(t, os.IsNotExist(statErr), "expected no output file, stat error: %v", statErr)
		})
	}
}

func TestGenerate_MissingInput(t *testing.T) {
	_, err := Generate(context.Background(), &Config{Logger: quietLogger()})
	require.Error(t, err)
	e := Classify(err)
	assert.Equal(t, CodeUsage, e.Code)
	assert.Equal(t, "required", e.Details["input"])

	_, err = Generate(context.Background(), nil)
	assert.Equal(t, CodeUsage, Classify(err).Code)
}

func TestGenerate_UnreadableInput(t *testing.T) {
	_, err := Generate(context.Background(), &Config{
		Input:  filepath.Join(t.TempDir(), "missing.ts"),
		Logger: quietLogger(),
	})
	require.Error(t, err)
	assert.Equal(t, CodeSourceRead, Classify(err).Code)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate_LexError(t *testing.T) {
	_, err := FromSource("bad.ts", []byte("export type A = 'open\n")).
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.Error(t, err)
	e := Classify(err)
	assert.Equal(t, CodeSourceSyntax, e.Code)
	assert.Equal(t, 1, e.Details["line"])
}

func TestGenerate_BadEmbeddedLiteral(t *testing.T) {
	_, err := FromSource("types.ts", []byte("export const typeDefs = gql`type {`;\n")).
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeSchemaParse, Classify(err).Code)
}

func TestGenerate_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Generate(context.Background(), &Config{
		Input:  writeInput(t, "export type A = { x: string };\n"),
		Output: filepath.Join(blocker, "schema.graphql"),
		Logger: quietLogger(),
	})
	require.Error(t, err)
	assert.Equal(t, CodeWrite, Classify(err).Code)
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, &Config{
		Input:  writeInput(t, "export type A = { x: string };\n"),
		Logger: quietLogger(),
	})
	require.Error(t, err)
	assert.Equal(t, CodeCanceled, Classify(err).Code)
}

func TestGenerate_Directives(t *testing.T) {
	src := `// gqlschema:config nullability=maybe skipTypename indent=4
export type Maybe<T> = T | null;
export type User = {
  __typename?: 'User';
  email: Maybe<string>;
  name: string;
};
`
	result, err := FromSource("types.ts", []byte(src)).
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, graphql.NullabilityMaybe, result.Config.Nullability)
	assert.Equal(t, 4, result.Config.Indent)

	out := string(result.Schema)
	assert.Contains(t, out, "    email: String\n")
	assert.Contains(t, out, "    name: String!\n")
	assert.Empty(t, result.Warnings)
}

func TestGenerate_OverridesBeatDirectives(t *testing.T) {
	src := `// gqlschema:config nullability=maybe
export type Maybe<T> = T | null;
export type User = {
  email: Maybe<string>;
};
`
	result, err := FromSource("types.ts", []byte(src)).
		WithNullability(graphql.NullabilityOptional).
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(result.Schema), "email: String!")

	result, err = FromSource("types.ts", []byte(src)).
		IgnoreDirectives().
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, graphql.NullabilityOptional, result.Config.Nullability)
}

func TestGenerate_InvalidDirective(t *testing.T) {
	_, err := FromSource("types.ts", []byte("// gqlschema:config nullability=never\nexport type A = { x: string };\n")).
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, CodeUsage, Classify(err).Code)
}

func TestGenerate_HeaderAndUnknownWarnings(t *testing.T) {
	result, err := FromSource("types.ts", []byte(`export type A = {
  fn: () => void;
};
`)).
		Header("Code generated by gqlschemagen. DO NOT EDIT.").
		WithLogger(quietLogger()).
		Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(result.Schema), "# Code generated by gqlschemagen. DO NOT EDIT.\n\n"))
	assert.Contains(t, string(result.Schema), "fn: Unknown!")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "unknown_type", result.Warnings[0].Code)
}

func TestGenerator_ToSink(t *testing.T) {
	mem := sink.NewMemorySink()
	result, err := FromSource("types.ts", []byte("export type A = { x: number };\n")).
		WithLogger(quietLogger()).
		ToSink(context.Background(), mem)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputName, result.Output)
	assert.Equal(t, result.Schema, mem.Get(DefaultOutputName))
	assert.Contains(t, string(mem.Get(DefaultOutputName)), "x: Int!")
}

func TestGenerator_ToFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "schema.graphql")
	_, err := FromFile(writeInput(t, "export type A = { x: boolean };\n")).
		WithIndent(3).
		WithLogger(quietLogger()).
		ToFile(context.Background(), output)
	require.NoError(t, err)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "   x: Boolean!")
}

func TestCheck_WritesNothing(t *testing.T) {
	output := filepath.Join(t.TempDir(), "schema.graphql")
	result, err := Check(context.Background(), &Config{
		Input:  writeInput(t, "export type A = { x: string };\n"),
		Output: output,
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Schema)
	assert.Empty(t, result.Output)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
