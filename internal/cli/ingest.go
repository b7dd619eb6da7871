package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/thaole73/snowload/internal/config"
	"github.com/thaole73/snowload/internal/files/filesystem"
	"github.com/thaole73/snowload/internal/files/scanner"
	"github.com/thaole73/snowload/internal/ledger"
	"github.com/thaole73/snowload/internal/logging"
	"github.com/thaole73/snowload/internal/mapping"
	"github.com/thaole73/snowload/internal/schema"
	"github.com/thaole73/snowload/internal/services"
	"github.com/thaole73/snowload/internal/storage"
	"github.com/thaole73/snowload/internal/ui"
	"github.com/thaole73/snowload/internal/warehouse"
	"github.com/thaole73/snowload/pkg/snowload"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [data_dir]",
	Short: "Stage CSV files to S3 and load them into Snowflake",
	Long: `Ingest discovers CSV files in the data directory, stages them to the
configured S3 bucket, and bulk-loads them into raw Snowflake tables through
the external stage.

By default the run is a FULL REFRESH: every raw table is recreated, the
processed-file ledger is wiped, and all discovered files are loaded. Full
refresh must be confirmed interactively unless --force is given.

With --incremental, existing tables are preserved and only files absent from
the ledger are loaded. No confirmation is required.

Connection settings come from the environment (or a .env file):
  SNOWFLAKE_ACCOUNT, SNOWFLAKE_USER, SNOWFLAKE_PASSWORD,
  SNOWFLAKE_WAREHOUSE, SNOWFLAKE_DATABASE, SNOWFLAKE_SCHEMA_RAW,
  SNOWFLAKE_STAGE_NAME, S3_BUCKET, S3_PREFIX_RAW,
  AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_REGION

Local paths come from flags, the optional snowload.yaml project file, or
defaults, in that order.

Examples:
  # Full refresh of ./data with interactive confirmation
  snowload ingest ./data

  # Full refresh in CI (countdown on a terminal, immediate otherwise)
  snowload ingest ./data --force

  # Load only files not yet in the ledger
  snowload ingest ./data --incremental`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

type ingestFlagValues struct {
	incremental bool
	force       bool
	ledgerPath  string
	schemaDir   string
	timeout     time.Duration
}

var ingestFlags ingestFlagValues

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().BoolVar(&ingestFlags.incremental, "incremental", false,
		"Preserve tables and ledger history; load only new files")
	ingestCmd.Flags().BoolVar(&ingestFlags.force, "force", false,
		"Skip interactive approval for full refresh\n"+
			"Only affects the confirmation dialog, not run behavior\n"+
			"Use for CI/CD pipelines")
	ingestCmd.Flags().StringVar(&ingestFlags.ledgerPath, "ledger", "",
		"Processed-file ledger path (default: snowload.yaml or "+snowload.DefaultLedgerFile+")")
	ingestCmd.Flags().StringVar(&ingestFlags.schemaDir, "schema-dir", "",
		"Directory holding one DDL file per raw table (default: snowload.yaml or ./schemas)")
	ingestCmd.Flags().DurationVar(&ingestFlags.timeout, "timeout", snowload.DefaultRunTimeout,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues; bulk loads of\n"+
			"large files can be slow, so keep this generous\n"+
			"Examples: 5m, 30m, 1h30m")
}

// resolvePaths applies the flag > snowload.yaml > default precedence for the
// local-path settings shared by ingest and plan.
func resolvePaths(cmd *cobra.Command, args []string, project *config.ProjectConfig) (snowload.IngestConfig, error) {
	cfg := snowload.IngestConfig{
		DataDir:    "data",
		SchemaDir:  "schemas",
		LedgerPath: snowload.DefaultLedgerFile,
		Timeout:    ingestFlags.timeout,
	}

	if project != nil {
		if project.DataDir != "" {
			cfg.DataDir = project.DataDir
		}
		if project.SchemaDir != "" {
			cfg.SchemaDir = project.SchemaDir
		}
		if project.Ledger != "" {
			cfg.LedgerPath = project.Ledger
		}
		if project.Timeout != "" && !cmd.Flags().Changed("timeout") {
			parsed, err := time.ParseDuration(project.Timeout)
			if err != nil {
				return snowload.IngestConfig{}, fmt.Errorf("invalid timeout in %s: %w", config.ProjectFileName, err)
			}
			cfg.Timeout = parsed
		}
	}

	if len(args) == 1 {
		cfg.DataDir = args[0]
	}
	if ingestFlags.schemaDir != "" {
		cfg.SchemaDir = ingestFlags.schemaDir
	}
	if ingestFlags.ledgerPath != "" {
		cfg.LedgerPath = ingestFlags.ledgerPath
	}

	return cfg, nil
}

// loadEnvironment loads .env, the project file, and the mapping registry.
// A missing project file is not an error; it just means defaults.
func loadEnvironment() (*config.ProjectConfig, *mapping.Registry, error) {
	_ = godotenv.Load()

	registry := mapping.Default()

	project, raw, err := config.LoadProject(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, registry, nil
		}
		return nil, nil, err
	}

	registry, err = registry.WithOverlay(raw)
	if err != nil {
		return nil, nil, err
	}
	return project, registry, nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	project, registry, err := loadEnvironment()
	if err != nil {
		return err
	}

	runCfg, err := resolvePaths(cmd, args, project)
	if err != nil {
		return err
	}
	runCfg.FullRefresh = !ingestFlags.incremental
	runCfg.Force = ingestFlags.force
	runCfg.Verbose = verbose

	envCfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stager, err := storage.NewS3Stager(ctx, envCfg)
	if err != nil {
		return err
	}

	var approver snowload.Approver
	if ingestFlags.force {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover()
	}

	fileLedger := ledger.NewFileLedger(runCfg.LedgerPath)
	ingestor := services.NewIngestService(
		services.WarehouseTarget{
			SchemaName: envCfg.SchemaRaw,
			StageName:  envCfg.StageName,
			KeyPrefix:  envCfg.KeyPrefix,
		},
		logging.NewConsoleLogger(verbose),
		approver,
		scanner.NewScanner(),
		registry,
		schema.NewSource(runCfg.SchemaDir),
		fileLedger,
		ledger.NewRunLock(runCfg.LedgerPath),
		stager,
		warehouse.NewSnowflakeConnector(envCfg),
		filesystem.NewOSFileSystem(),
	)

	return ingestor.Ingest(ctx, runCfg)
}
