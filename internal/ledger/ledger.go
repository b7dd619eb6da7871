// Package ledger persists the record of files already ingested and provides
// the run lock that serializes ingestion runs.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thaole73/snowload/pkg/snowload"
)

// FileLedger is a processed-file ledger backed by a plain text log, one file
// identifier per line. NOT safe for concurrent use; overlapping runs are
// excluded by RunLock instead.
type FileLedger struct {
	path string
}

// NewFileLedger creates a ledger backed by the log file at path.
// The file is created lazily on first Commit or Reset.
func NewFileLedger(path string) *FileLedger {
	if path == "" {
		panic("ledger path cannot be empty")
	}
	return &FileLedger{path: path}
}

// Path returns the backing log file location.
func (l *FileLedger) Path() string {
	return l.path
}

// Load reads all previously committed file identifiers.
// A missing log file is not an error: it means nothing has been ingested.
func (l *FileLedger) Load() (map[string]struct{}, error) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", l.path, err)
	}

	processed := make(map[string]struct{})
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		processed[line] = struct{}{}
	}
	return processed, nil
}

// Reset truncates the ledger to empty by writing a fresh file and renaming
// it over the old one. The rename is atomic on POSIX filesystems, so a crash
// mid-reset leaves either the old complete log or an empty one: it can lose
// history but never fabricate partial history.
func (l *FileLedger) Reset() error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".ledger-reset-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}

// Commit appends one file identifier to the log and syncs it to disk.
// Callers must only commit after the file's staging and load succeeded.
func (l *FileLedger) Commit(fileID string) error {
	if strings.ContainsRune(fileID, '\n') {
		return fmt.Errorf("file identifier must not contain newlines: %q", fileID)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(fileID + "\n"); err != nil {
		return fmt.Errorf("failed to append to ledger: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync ledger: %w", err)
	}
	return nil
}

// Verify FileLedger implements the interface at compile time
var _ snowload.Ledger = (*FileLedger)(nil)
