package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thaole73/snowload/internal/files/filesystem"
	"github.com/thaole73/snowload/pkg/snowload"
)

// Scanner discovers candidate data files in a local directory.
// Safe for concurrent use as long as the provided fsProvider is thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new candidate scanner using the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new candidate scanner with a custom filesystem
// provider. This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
	}
}

// Discover lists candidate CSV files directly inside dataDir, in
// lexicographic path order. Subdirectories and non-CSV files are ignored.
// The returned paths are the identifiers later committed to the ledger.
func (s *Scanner) Discover(dataDir string) ([]snowload.CandidateFile, error) {
	entries, err := s.fsProvider.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory %s: %w", dataDir, err)
	}

	var candidates []snowload.CandidateFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), snowload.CandidateExtension) {
			continue
		}
		candidates = append(candidates, snowload.CandidateFile{
			Path: filepath.Join(dataDir, name),
			Name: name,
		})
	}

	// Deterministic processing order across runs and platforms
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	return candidates, nil
}
