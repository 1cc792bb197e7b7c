package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// NewOptionsCmd creates the options command, which lists the values a farm
// record may use.
func NewOptionsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List farming methods, fertilizer levels, livestock types and seasons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output, outputTable, outputJSON)
			if err != nil {
				return err
			}
			asm, err := newAssembler(cmd.Context())
			if err != nil {
				return err
			}
			opts := asm.Options()
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), opts, true)
			}
			return renderOptions(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

func renderOptions(w io.Writer, opts report.Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.

	fmt.Fprintln(tw, "FARMING METHOD\tMULTIPLIER\tDESCRIPTION")
	for _, m := range opts.FarmingMethods {
		fmt.Fprintf(tw, "%s\t%g\t%s\n", m.Value, m.Multiplier, m.Description)
	}
	fmt.Fprintln(tw, "\t\t")
	fmt.Fprintln(tw, "FERTILIZER LEVEL\tKG/HA\t")
	for _, l := range opts.FertilizerLevels {
		fmt.Fprintf(tw, "%s\t%g\t\n", l.Value, l.BasePerHectare)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Livestock types: %s\n", strings.Join(opts.LivestockTypes, ", "))
	fmt.Fprintf(w, "Seasons:         %s\n", strings.Join(opts.Seasons, ", "))
	_, err := fmt.Fprintf(w, "Current season:  %s\n", opts.CurrentSeason)
	return err
}
