package snowload

// Ledger is the append-only record of files already ingested.
//
// Invariant: every persisted entry corresponds to a file whose staging and
// bulk load both completed; Commit is called only after load success, so a
// crash between staging and commit causes a re-attempt on the next
// incremental run rather than a silent skip of a half-loaded table.
//
// Implementations are NOT safe for concurrent use; runs are serialized by a
// run lock instead.
type Ledger interface {
	// Load reads all previously committed file identifiers.
	// Returns an empty set if no persisted log exists.
	Load() (map[string]struct{}, error)

	// Reset truncates the persisted log to empty. Used only for full
	// refresh. The truncation must be atomic enough that a crash mid-reset
	// loses history rather than fabricating it.
	Reset() error

	// Commit appends one file identifier. Must be called only after the
	// corresponding file's staging and load have both succeeded.
	Commit(fileID string) error
}
