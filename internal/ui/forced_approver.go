// Package ui implements the approval prompts that gate a full refresh.
// A full refresh recreates every raw table and wipes the processed-file
// ledger, so it is confirmed the way destructive database operations are.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/thaole73/snowload/pkg/snowload"
)

// ForcedApprover implements the Approver interface for non-interactive
// approval. On a terminal it displays a countdown before proceeding, giving
// the operator a last chance to Ctrl+C; without a terminal (cron, CI) it
// approves immediately.
type ForcedApprover struct {
	output     io.Writer
	sleepFn    func(time.Duration)
	isTerminal func() bool
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover() snowload.Approver {
	return &ForcedApprover{
		output:     os.Stderr,
		sleepFn:    time.Sleep,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
	}
}

// RequestApproval warns, counts down on a terminal, and approves.
func (a *ForcedApprover) RequestApproval(ctx context.Context, schemaName string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: full refresh will DROP and RECREATE every raw table in schema '%s'\n", schemaName)
	fmt.Fprintln(a.output, "and reset the processed-file ledger.")

	if !a.isTerminal() {
		fmt.Fprintln(a.output, "No terminal detected; proceeding with full refresh...")
		return true, nil
	}

	countdownSeconds := int(snowload.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rRefreshing in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}

	fmt.Fprintf(a.output, "\rProceeding with full refresh...                              \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ snowload.Approver = (*ForcedApprover)(nil)
