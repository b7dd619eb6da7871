package snowload

import "context"

// Approver handles user interaction for approval workflows. A full refresh
// recreates every target table and wipes the processed-file ledger, so it is
// gated the same way destructive database operations usually are.
//
// Implementations:
//   - ForcedApprover: Shows a countdown and automatically approves
//   - InteractiveApprover: Prompts the user to type the schema name to confirm
type Approver interface {
	// RequestApproval prompts for confirmation before a full refresh against
	// the named warehouse schema.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, schemaName string) (bool, error)
}
