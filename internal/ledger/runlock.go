package ledger

import (
	"fmt"
	"os"
	"strconv"

	"github.com/thaole73/snowload/pkg/snowload"
)

// RunLock is a lock file that prevents two ingestion runs from racing on the
// same ledger. The lock is advisory: it guards cooperating snowload
// invocations, not arbitrary writers.
//
// The original pipeline had no such guard; adding it is a deliberate,
// documented behavior change (see DESIGN.md).
type RunLock struct {
	path string
	held bool
}

// NewRunLock creates a run lock beside the given ledger path.
func NewRunLock(ledgerPath string) *RunLock {
	return &RunLock{path: ledgerPath + ".lock"}
}

// Acquire creates the lock file exclusively. Returns ErrLedgerLocked if
// another run already holds it.
func (r *RunLock) Acquire() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("lock file %s exists: %w", r.path, snowload.ErrLedgerLocked)
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	// Record the holder's pid to ease debugging stale locks
	_, writeErr := f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(r.path)
		return fmt.Errorf("failed to write lock file: %w", fmt.Errorf("write: %v, close: %v", writeErr, closeErr))
	}

	r.held = true
	return nil
}

// Release removes the lock file. Idempotent: releasing an unheld lock is a
// no-op so it can sit safely in a defer on every exit path.
func (r *RunLock) Release() error {
	if !r.held {
		return nil
	}
	r.held = false
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
