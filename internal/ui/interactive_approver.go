package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thaole73/snowload/pkg/snowload"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the schema name to
// confirm the full refresh.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin.
func NewInteractiveApprover() snowload.Approver {
	return &InteractiveApprover{
		input:  os.Stdin,
		output: os.Stderr,
	}
}

// RequestApproval prompts the user to type the schema name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, schemaName string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: full refresh will DROP and RECREATE every raw table in schema '%s'\n", schemaName)
	fmt.Fprintln(a.output, "and reset the processed-file ledger. Incremental history will be lost.")
	fmt.Fprintf(a.output, "\nTo confirm, type the schema name '%s' and press Enter: ", schemaName)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == schemaName {
			fmt.Fprintln(a.output, "Confirmed. Proceeding with full refresh...")
			return true, nil
		}
		fmt.Fprintf(a.output, "Input '%s' does not match schema name '%s'. Operation cancelled.\n", input, schemaName)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ snowload.Approver = (*InteractiveApprover)(nil)
