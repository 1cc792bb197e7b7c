package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ecosystemplus/farmcarbon/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$FARMCARBON_HOME/config.yaml (~/.farmcarbon/config.yaml when unset), or at
the path given with --config.`,
		Example: `  # Create the default configuration
  farmcarbon config init

  # Create configuration, overwriting existing
  farmcarbon config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetGlobalConfig().ConfigPath()

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			cfg := config.Default()
			cfg.SetConfigPath(path)
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, .env and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			cmd.Printf("# %s\n", cfg.ConfigPath())
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
