package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/thaole73/snowload/internal/files/filesystem"
)

// ErrSchemaFileNotFound marks a missing DDL file. The ingestion loop treats
// it as a per-file skip, not a fatal error.
var ErrSchemaFileNotFound = errors.New("schema file not found")

// Source resolves schema-definition references to their DDL text.
// Safe for concurrent use as long as the provided fsProvider is thread-safe.
type Source struct {
	schemaDir  string
	fsProvider filesystem.FileSystemProvider
}

// NewSource creates a DDL source over the given schema directory using the
// OS filesystem.
func NewSource(schemaDir string) *Source {
	return &Source{
		schemaDir:  schemaDir,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewSourceWithFS creates a DDL source with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewSourceWithFS(schemaDir string, fsProvider filesystem.FileSystemProvider) *Source {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Source{
		schemaDir:  schemaDir,
		fsProvider: fsProvider,
	}
}

// Read returns the DDL text for one schema file reference.
// A missing file returns ErrSchemaFileNotFound; other read failures are
// returned as-is.
func (s *Source) Read(schemaFile string) (string, error) {
	path := filepath.Join(s.schemaDir, schemaFile)

	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSchemaFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return string(content), nil
}
