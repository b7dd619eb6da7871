// Package cli wires the cobra command tree: flag parsing, environment
// loading, and dependency construction for the ingestion services.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "snowload",
	Short: "Incremental flat-file ingestion into Snowflake",
	Long: `snowload stages local CSV files to S3 and bulk-loads them into raw
Snowflake tables, tracking what has already been ingested in an append-only
ledger so repeated runs only pick up new files.

A full refresh recreates every raw table and replays all files; an
incremental run preserves tables and loads only files absent from the
ledger.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing environment variables
  11 - Warehouse connection failed
  12 - User denied full-refresh approval
  13 - Staging, DDL, or bulk-load execution failed
  14 - Another run holds the ledger lock`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
