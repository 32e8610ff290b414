package graphql

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/luca-saggese/graphql-schema-generator/schemagen/provider"
)

// Each archive in testdata holds an input.ts file, the expected extracted
// schema text and the expected summary of the rewritten document.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)
			sections := make(map[string]string)
			for _, f := range archive.Files {
				sections[f.Name] = string(f.Data)
			}

			file, err := provider.ParseSource("input.ts", []byte(sections["input.ts"]))
			require.NoError(t, err)
			require.Empty(t, file.Warnings)

			extraction, err := Extract(file, Options{Logger: quietLogger()})
			require.NoError(t, err)
			assert.Equal(t, normalize(sections["extracted.graphql"]), normalize(extraction.SchemaText))

			doc, err := ParseSchema("input.ts", extraction.SchemaText)
			require.NoError(t, err)
			Rewrite(doc, extraction.Args, RewriteOptions{Logger: quietLogger()})
			assert.Equal(t, sections["schema.txt"], summarize(doc))

			// The printed schema parses back to the same document.
			reparsed, err := ParseSchema("output.graphql", string(PrintSchema(doc, PrintOptions{})))
			require.NoError(t, err)
			assert.Equal(t, withoutIntrospection(sections["schema.txt"]), withoutIntrospection(summarize(reparsed)))
		})
	}
}

// normalize drops blank lines and trailing spaces.
func normalize(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// withoutIntrospection drops __typename lines, which the printer may omit.
func withoutIntrospection(summary string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(summary, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "__") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
