package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thaole73/snowload/internal/files/scanner"
	"github.com/thaole73/snowload/internal/ledger"
	"github.com/thaole73/snowload/internal/schema"
	"github.com/thaole73/snowload/internal/services"
	"github.com/thaole73/snowload/pkg/snowload"
)

var planCmd = &cobra.Command{
	Use:   "plan [data_dir]",
	Short: "Show what an ingestion run would do, without doing it",
	Long: `Plan discovers candidate CSV files and reports, per file, whether a run
would load or skip it and why. Nothing is staged, no warehouse connection is
made, and the ledger is not modified.

By default the plan reflects a full refresh (all files). With --incremental
it reflects an incremental run (files absent from the ledger only).

Examples:
  snowload plan ./data
  snowload plan ./data --incremental`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&ingestFlags.incremental, "incremental", false,
		"Plan an incremental run instead of a full refresh")
	planCmd.Flags().StringVar(&ingestFlags.ledgerPath, "ledger", "",
		"Processed-file ledger path (default: snowload.yaml or "+snowload.DefaultLedgerFile+")")
	planCmd.Flags().StringVar(&ingestFlags.schemaDir, "schema-dir", "",
		"Directory holding one DDL file per raw table (default: snowload.yaml or ./schemas)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	project, registry, err := loadEnvironment()
	if err != nil {
		return err
	}

	runCfg, err := resolvePaths(cmd, args, project)
	if err != nil {
		return err
	}
	runCfg.FullRefresh = !ingestFlags.incremental

	planner := services.NewPlanService(
		scanner.NewScanner(),
		registry,
		schema.NewSource(runCfg.SchemaDir),
		ledger.NewFileLedger(runCfg.LedgerPath),
	)

	planned, err := planner.Plan(cmd.Context(), runCfg)
	if err != nil {
		return err
	}

	mode := "full refresh"
	if ingestFlags.incremental {
		mode = "incremental"
	}
	fmt.Fprintf(os.Stdout, "Plan (%s) for %s:\n", mode, runCfg.DataDir)

	if len(planned) == 0 {
		fmt.Fprintln(os.Stdout, "  nothing to do")
		return nil
	}

	loads := 0
	for _, entry := range planned {
		if entry.Skip {
			fmt.Fprintf(os.Stdout, "  SKIP  %-32s %s\n", entry.Candidate.Name, entry.SkipReason)
			continue
		}
		loads++
		fmt.Fprintf(os.Stdout, "  LOAD  %-32s -> %s\n", entry.Candidate.Name, entry.TableName)
	}
	fmt.Fprintf(os.Stdout, "%d file(s) to load, %d to skip\n", loads, len(planned)-loads)

	return nil
}
