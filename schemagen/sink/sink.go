// Package sink provides output destinations for generated schema files.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to name. The name is relative; the sink
	// determines the actual location.
	WriteFile(ctx context.Context, name string, content []byte) error
}

// FilesystemSink writes files below a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, WriteFile fails when the file exists.
	Overwrite bool
}

// NewFilesystemSink returns a sink writing below root, replacing existing files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

// ForFile returns a sink and relative name for writing the file at path,
// which may be absolute.
func ForFile(path string) (*FilesystemSink, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve output path: %w", err)
	}
	return NewFilesystemSink(filepath.Dir(abs)), filepath.Base(abs), nil
}

// WriteFile writes content to name within the root directory. Parent
// directories are created as needed, and the file is replaced atomically
// through a temporary file in the same directory.
func (s *FilesystemSink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}
	tempPath, err := writeTemp(dir, content, mode)
	if err != nil {
		return err
	}
	// Leftover temp files use the .gqlschema-*.tmp pattern.
	discard := func() { _ = os.Remove(tempPath) }

	if err := ctx.Err(); err != nil {
		discard()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tempPath, target); err != nil {
			discard()
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}

	// Link fails with EEXIST when the target exists, without a stat race.
	err = os.Link(tempPath, target)
	discard()
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("file already exists: %q", name)
	}
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	return nil
}

// resolve joins name to the root and rejects results outside of it.
func (s *FilesystemSink) resolve(name string) (string, error) {
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root directory: %w", err)
	}
	target := filepath.Join(absRoot, filepath.FromSlash(name))
	if !strings.HasPrefix(target, absRoot+string(filepath.Separator)) && target != absRoot {
		return "", fmt.Errorf("path escapes root directory: %q", name)
	}
	return target, nil
}

func writeTemp(dir string, content []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".gqlschema-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	_, writeErr := f.Write(content)
	closeErr := f.Close()

	var failure error
	switch {
	case writeErr != nil:
		failure = fmt.Errorf("write temp file: %w", writeErr)
	case closeErr != nil:
		failure = fmt.Errorf("close temp file: %w", closeErr)
	default:
		if err := os.Chmod(f.Name(), mode); err != nil {
			failure = fmt.Errorf("set file mode: %w", err)
		}
	}
	if failure != nil {
		_ = os.Remove(f.Name())
		return "", failure
	}
	return f.Name(), nil
}

// WriterSink writes every file to a single writer, such as standard output.
// Names are ignored.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteFile writes content to the underlying writer.
func (s *WriterSink) WriteFile(ctx context.Context, _ string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// MemorySink stores files in memory. It is used by the check command and
// by tests. All operations are safe for concurrent use.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under name.
func (s *MemorySink) WriteFile(ctx context.Context, name string, content []byte) error {
	if err := ValidatePath(name); err != nil {
		return fmt.Errorf("invalid path %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), content...)
	return nil
}

// Files returns a copy of all stored files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.files))
	for name, content := range s.files {
		out[name] = append([]byte(nil), content...)
	}
	return out
}

// Get returns a copy of one file, or nil if it was never written.
func (s *MemorySink) Get(name string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[name]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// ValidatePath checks that a sink-relative name is usable: relative, using
// "/" as separator, clean, and free of ".." components.
func ValidatePath(name string) error {
	if name == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(name) || isDriveLetter(name) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	slashed := filepath.ToSlash(name)
	if cleaned := filepath.ToSlash(filepath.Clean(slashed)); cleaned != slashed {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, name)
	}
	return nil
}

func isDriveLetter(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
