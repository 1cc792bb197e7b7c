package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the farmcarbon CLI.
// It loads configuration, wires up logging and tracing, and registers the
// report, batch, options, factors, history, serve and config commands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "farmcarbon",
		Short:         "Farm carbon emission reports",
		Long:          "farmcarbon: estimate monthly greenhouse-gas emissions of a farm and recommend ways to reduce them",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default $FARMCARBON_HOME/config.yaml)")
	cmd.AddCommand(
		NewReportCmd(), NewBatchCmd(), NewOptionsCmd(), newFactorsCmd(),
		newHistoryCmd(), NewServeCmd(), newConfigCmd(),
	)

	return cmd
}

// loadConfig replaces the global configuration when --config is given.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		config.InitGlobalConfig()
		return nil
	}
	return config.LoadGlobalConfig(path)
}

const rootCmdExample = `  # Report for a 10 ha organic farm in the dry season
  farmcarbon report --area 10 --method organic --fertilizer medium \
    --livestock cattle=5 --fuel 50 --season dry

  # Derive the season from a month and save the report
  farmcarbon report --input farm.yaml --month 4 --save

  # Explore changes interactively
  farmcarbon report --input farm.yaml --interactive

  # Reports for many farms at once
  farmcarbon batch --input farms.yaml --output json

  # Recent reports and statistics
  farmcarbon history list
  farmcarbon history stats

  # Serve the HTTP API
  farmcarbon serve --addr :8080`

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Emission factor table commands"}
	cmd.AddCommand(NewFactorsShowCmd(), NewFactorsValidateCmd())
	return cmd
}

// newHistoryCmd creates the history command group.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "history", Short: "Saved report commands"}
	cmd.AddCommand(NewHistoryListCmd(), NewHistoryStatsCmd(), NewHistoryExportCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
