package provider

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceProvider_BuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.ts")
	require.NoError(t, os.WriteFile(path, []byte("export type User = { id: string }\n"), 0o644))

	p := &SourceProvider{}
	file, err := p.BuildFile(context.Background(), SourceInputOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, path, file.Path)
	require.Len(t, file.Declarations, 1)
	assert.Equal(t, "User", file.Declarations[0].DeclName())
	assert.Equal(t, path, file.Declarations[0].Src().File)
}

func TestSourceProvider_InMemorySource(t *testing.T) {
	p := &SourceProvider{}
	file, err := p.BuildFile(context.Background(), SourceInputOptions{
		Path:   "virtual.ts",
		Source: []byte("enum E { A }"),
	})
	require.NoError(t, err)
	require.Len(t, file.Declarations, 1)
	assert.Equal(t, "E", file.Declarations[0].DeclName())
}

func TestSourceProvider_ReadError(t *testing.T) {
	p := &SourceProvider{}
	_, err := p.BuildFile(context.Background(), SourceInputOptions{
		Path: filepath.Join(t.TempDir(), "missing.ts"),
	})

	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSourceProvider_NoInput(t *testing.T) {
	p := &SourceProvider{}
	_, err := p.BuildFile(context.Background(), SourceInputOptions{})
	assert.ErrorContains(t, err, "no input")
}

func TestSourceProvider_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &SourceProvider{}
	_, err := p.BuildFile(ctx, SourceInputOptions{Path: "x.ts", Source: []byte("")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseSource_LexErrorCarriesPath(t *testing.T) {
	_, err := ParseSource("bad.ts", []byte("type A = 'oops\n"))

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "bad.ts", se.File)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, "bad.ts:1:10: unterminated string literal", err.Error())
}
