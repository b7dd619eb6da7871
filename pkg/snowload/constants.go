package snowload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or missing settings
	ExitConnectionError = 11 // Failed to connect to the warehouse
	ExitApprovalDenied  = 12 // User denied full-refresh approval
	ExitExecutionFailed = 13 // Staging, DDL, or bulk-load execution failed
	ExitLedgerLocked    = 14 // Another run holds the ledger lock
)

const (
	// ObjectKeyTimeLayout is the timestamp format embedded in staged object
	// keys: <prefix><timestamp>_<filename>.
	ObjectKeyTimeLayout = "20060102150405"

	// DefaultLedgerFile is the processed-file log location when none is
	// configured.
	DefaultLedgerFile = "processed_files.log"

	// DefaultRunTimeout is the catastrophic failure protection timeout for a
	// whole run. Bulk loads of large files can be slow, so this is generous.
	DefaultRunTimeout = 30 * time.Minute

	// DefaultForceApprovalCountdown is the countdown duration before a forced
	// full-refresh approval proceeds on an interactive terminal.
	DefaultForceApprovalCountdown = 5 * time.Second

	// CandidateExtension is the only file extension considered during
	// candidate discovery.
	CandidateExtension = ".csv"
)
