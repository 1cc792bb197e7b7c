package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecosystemplus/farmcarbon/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration for syntax and semantic correctness.

This includes:
- Output format and precision
- Log level and format
- Factor table file and minimum version constraint
- Server address and timeouts`,
		Example: `  # Validate current configuration
  farmcarbon config validate

  # Validate and show detailed information
  farmcarbon config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	table, err := cfg.LoadFactors()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")

	if verbose {
		cmd.Printf("  config file:    %s\n", cfg.ConfigPath())
		cmd.Printf("  output:         %s (precision %d)\n", cfg.Output.DefaultFormat, cfg.Output.Precision)
		cmd.Printf("  logging:        %s/%s\n", cfg.Logging.Level, cfg.Logging.Format)
		source := cfg.Factors.File
		if source == "" {
			source = "built-in"
		}
		cmd.Printf("  factor table:   %s (version %s)\n", source, table.Version())
		if cfg.Store.Enabled {
			cmd.Printf("  store:          %s\n", cfg.Store.Path)
		} else {
			cmd.Println("  store:          disabled")
		}
		cmd.Printf("  server address: %s\n", cfg.Server.Address)
	}

	return nil
}
