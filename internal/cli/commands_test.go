package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaole73/snowload/internal/config"
	"github.com/thaole73/snowload/pkg/snowload"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["ingest"], "ingest command should be registered")
	assert.True(t, names["plan"], "plan command should be registered")
	assert.True(t, names["version"], "version command should be registered")
}

func TestRootCommand_SilencesUsageOnErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage)
}

func newPathsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Duration("timeout", snowload.DefaultRunTimeout, "")
	return cmd
}

func resetIngestFlags(t *testing.T) {
	t.Helper()
	saved := ingestFlags
	t.Cleanup(func() { ingestFlags = saved })
	ingestFlags = ingestFlagValues{timeout: snowload.DefaultRunTimeout}
}

func TestResolvePaths_Defaults(t *testing.T) {
	resetIngestFlags(t)

	cfg, err := resolvePaths(newPathsCommand(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "schemas", cfg.SchemaDir)
	assert.Equal(t, snowload.DefaultLedgerFile, cfg.LedgerPath)
	assert.Equal(t, snowload.DefaultRunTimeout, cfg.Timeout)
}

func TestResolvePaths_ProjectFileOverridesDefaults(t *testing.T) {
	resetIngestFlags(t)

	project := &config.ProjectConfig{
		DataDir:   "exports",
		SchemaDir: "ddl",
		Ledger:    "state/processed.log",
		Timeout:   "45m",
	}

	cfg, err := resolvePaths(newPathsCommand(), nil, project)
	require.NoError(t, err)

	assert.Equal(t, "exports", cfg.DataDir)
	assert.Equal(t, "ddl", cfg.SchemaDir)
	assert.Equal(t, "state/processed.log", cfg.LedgerPath)
	assert.Equal(t, 45*time.Minute, cfg.Timeout)
}

func TestResolvePaths_ArgsAndFlagsOverrideProjectFile(t *testing.T) {
	resetIngestFlags(t)
	ingestFlags.schemaDir = "flag-ddl"
	ingestFlags.ledgerPath = "flag.log"

	project := &config.ProjectConfig{
		DataDir:   "exports",
		SchemaDir: "ddl",
		Ledger:    "state/processed.log",
	}

	cfg, err := resolvePaths(newPathsCommand(), []string{"arg-data"}, project)
	require.NoError(t, err)

	assert.Equal(t, "arg-data", cfg.DataDir)
	assert.Equal(t, "flag-ddl", cfg.SchemaDir)
	assert.Equal(t, "flag.log", cfg.LedgerPath)
}

func TestResolvePaths_ExplicitTimeoutFlagBeatsProjectFile(t *testing.T) {
	resetIngestFlags(t)
	ingestFlags.timeout = 2 * time.Minute

	cmd := newPathsCommand()
	require.NoError(t, cmd.Flags().Set("timeout", "2m"))

	project := &config.ProjectConfig{Timeout: "45m"}

	cfg, err := resolvePaths(cmd, nil, project)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestResolvePaths_InvalidProjectTimeout(t *testing.T) {
	resetIngestFlags(t)

	project := &config.ProjectConfig{Timeout: "soon"}

	_, err := resolvePaths(newPathsCommand(), nil, project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}
