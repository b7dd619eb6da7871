package snowload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := ingestor.Ingest(ctx, config)
//	if errors.Is(err, snowload.ErrLedgerLocked) {
//	    // Another run holds the ledger lock
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the warehouse connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrApprovalDenied indicates the user denied approval for a full refresh.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrStagingFailed indicates uploading a file to object storage failed.
	ErrStagingFailed = errors.New("staging failed")

	// ErrExecutionFailed indicates warehouse DDL or bulk-load execution failed.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrLedgerLocked indicates another run holds the ledger run lock.
	ErrLedgerLocked = errors.New("ledger is locked by another run")

	// ErrNoCreateClause indicates a DDL file contains no table-creation
	// clause to rewrite. The rewrite fails loudly rather than silently
	// executing unmodified DDL.
	ErrNoCreateClause = errors.New("no CREATE TABLE clause found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrStagingFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrNoCreateClause):
		return ExitExecutionFailed
	case errors.Is(err, ErrLedgerLocked):
		return ExitLedgerLocked
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
