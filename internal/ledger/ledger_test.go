package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaole73/snowload/pkg/snowload"
)

func newTestLedger(t *testing.T) *FileLedger {
	t.Helper()
	return NewFileLedger(filepath.Join(t.TempDir(), "processed_files.log"))
}

func TestLoad_MissingFileIsEmptySet(t *testing.T) {
	l := newTestLedger(t)

	processed, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, processed)
}

func TestCommitThenLoad(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Commit("/data/movies.csv"))
	require.NoError(t, l.Commit("/data/ratings_20240721.csv"))

	processed, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, processed, 2)
	assert.Contains(t, processed, "/data/movies.csv")
	assert.Contains(t, processed, "/data/ratings_20240721.csv")
}

func TestCommit_AppendOnly(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Commit("/data/a.csv"))
	require.NoError(t, l.Commit("/data/b.csv"))

	// Every loaded identifier appears literally in the persisted log
	content, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, "/data/a.csv\n/data/b.csv\n", string(content))
}

func TestCommit_RejectsNewlines(t *testing.T) {
	l := newTestLedger(t)
	assert.Error(t, l.Commit("bad\nid"))
}

func TestReset_TruncatesExistingLog(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Commit("/data/a.csv"))
	require.NoError(t, l.Reset())

	processed, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, processed)

	// The log file exists and is empty, not absent
	info, err := os.Stat(l.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReset_CreatesMissingLog(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Reset())

	_, err := os.Stat(l.Path())
	assert.NoError(t, err)
}

func TestReset_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLedger(filepath.Join(dir, "ledger.log"))
	require.NoError(t, l.Commit("/data/a.csv"))
	require.NoError(t, l.Reset())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.log", entries[0].Name())
}

func TestCommitAfterReset(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Commit("/data/a.csv"))
	require.NoError(t, l.Reset())
	require.NoError(t, l.Commit("/data/b.csv"))

	processed, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, processed, 1)
	assert.Contains(t, processed, "/data/b.csv")
}

func TestNewFileLedger_EmptyPathPanics(t *testing.T) {
	assert.Panics(t, func() { NewFileLedger("") })
}

func TestRunLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")

	first := NewRunLock(path)
	require.NoError(t, first.Acquire())

	second := NewRunLock(path)
	err := second.Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, snowload.ErrLedgerLocked))

	require.NoError(t, first.Release())
	assert.NoError(t, second.Acquire())
	require.NoError(t, second.Release())
}

func TestRunLock_ReleaseIdempotent(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "ledger.log"))

	require.NoError(t, lock.Acquire())
	require.NoError(t, lock.Release())
	assert.NoError(t, lock.Release())
}

func TestRunLock_ReleaseWithoutAcquire(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "ledger.log"))
	assert.NoError(t, lock.Release())
}
