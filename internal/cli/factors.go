package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/factors"
)

// NewFactorsShowCmd creates the factors show command, which prints the
// active emission factor table.
func NewFactorsShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active emission factor table",
		Example: `  farmcarbon factors show > factors.yaml
  farmcarbon factors show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output, outputYAML, outputJSON)
			if err != nil {
				return err
			}
			table, err := config.GetGlobalConfig().LoadFactors()
			if err != nil {
				return err
			}
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), table.Spec(), true)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2) //nolint:mnd // YAML indent.
			if err := enc.Encode(table); err != nil {
				return fmt.Errorf("encoding factor table: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: yaml or json")
	return cmd
}

// NewFactorsValidateCmd creates the factors validate command, which checks a
// factor table file.
func NewFactorsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check an emission factor table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := factors.LoadFile(args[0])
			if err != nil {
				return err
			}
			if constraint := config.GetGlobalConfig().Factors.MinVersion; constraint != "" {
				if err := table.CheckVersion(constraint); err != nil {
					return err
				}
			}
			cmd.Printf("Factor table %s is valid\n", args[0])
			cmd.Printf("  version:         %s\n", table.Version())
			cmd.Printf("  methodology:     %s\n", table.Methodology())
			cmd.Printf("  farming methods: %d\n", len(table.Methods()))
			cmd.Printf("  livestock types: %d\n", len(table.AnimalTypes()))
			return nil
		},
	}
}
