package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecosystemplus/farmcarbon/internal/batch"
	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/export"
	"github.com/ecosystemplus/farmcarbon/internal/greenops"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
)

// batchFlags holds the flags of the batch command.
type batchFlags struct {
	input   string
	workers int
	month   int
	output  string
	save    bool
	xlsx    string
}

// batchDocument is the JSON form of a batch run.
type batchDocument struct {
	Summary batch.Summary  `json:"summary"`
	Results []batch.Result `json:"results"`
}

// NewBatchCmd creates the batch command, which reports on every farm of a
// batch file concurrently.
func NewBatchCmd() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate emission reports for many farms",
		Long: `Calculates a report for every farm listed under "farms:" in a YAML file.
Farms with invalid data are reported as failed without stopping the batch.`,
		Example: `  farmcarbon batch --input farms.yaml
  farmcarbon batch --input farms.yaml --workers 8 --month 4 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBatch(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "batch file (YAML)")
	cmd.Flags().IntVar(&flags.workers, "workers", batch.DefaultWorkers, "number of farms processed concurrently")
	cmd.Flags().IntVar(&flags.month, "month", 0, "month (1-12) for farms without a season or month")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson")
	cmd.Flags().BoolVar(&flags.save, "save", false, "save successful reports to the history store")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "also write successful reports to this Excel file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func executeBatch(cmd *cobra.Command, flags batchFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx).With().Str("operation", "batch").Logger()

	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}

	items, err := batch.LoadFile(flags.input)
	if err != nil {
		return err
	}

	asm, err := newAssembler(ctx)
	if err != nil {
		return err
	}

	results, summary, err := batch.Run(ctx, asm, items, batch.Options{
		Workers:    flags.workers,
		Month:      flags.month,
		OnProgress: progressPrinter(cmd.ErrOrStderr()),
	})
	if err != nil {
		return err
	}
	if isTerminal(os.Stderr) {
		fmt.Fprint(cmd.ErrOrStderr(), "\r\033[K")
	}

	cfg := config.GetGlobalConfig()
	if flags.save || cfg.Store.Enabled {
		if err := saveBatch(ctx, results); err != nil {
			return err
		}
	}

	if flags.xlsx != "" {
		var rows []export.Row
		for _, res := range results {
			if res.Report != nil {
				rows = append(rows, export.Row{ID: res.ID, Name: res.Name, Report: *res.Report})
			}
		}
		if err := export.SaveXLSX(flags.xlsx, rows, cfg.Output.Precision); err != nil {
			return err
		}
		log.Info().Ctx(ctx).Str("path", flags.xlsx).Int("reports", len(rows)).Msg("batch exported")
	}

	return renderBatch(cmd.OutOrStdout(), format, results, summary, cfg.Output.Precision)
}

// progressPrinter returns a progress callback that rewrites one status line
// on w, or nil when stderr is not a terminal.
func progressPrinter(w io.Writer) batch.ProgressCallback {
	if !isTerminal(os.Stderr) {
		return nil
	}
	var mu sync.Mutex
	return func(s batch.ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "\r\033[KProcessing farms: %d/%d (%.0f%%)", s.ProcessedItems, s.TotalItems, s.PercentComplete)
	}
}

func saveBatch(ctx context.Context, results []batch.Result) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for i := range results {
		if results[i].Report == nil {
			continue
		}
		id, err := st.Save(ctx, *results[i].Report)
		if err != nil {
			return fmt.Errorf("saving report for %s: %w", results[i].Name, err)
		}
		results[i].ID = id
	}
	return nil
}

func renderBatch(w io.Writer, format string, results []batch.Result, summary batch.Summary, precision int) error {
	rounded := make([]batch.Result, len(results))
	for i, res := range results {
		rounded[i] = res
		if res.Report != nil {
			r := res.Report.Rounded(precision)
			rounded[i].Report = &r
		}
	}

	switch format {
	case outputJSON:
		return writeJSON(w, batchDocument{Summary: summary, Results: rounded}, true)
	case outputNDJSON:
		for _, res := range rounded {
			if err := writeJSON(w, res, false); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.
	fmt.Fprintln(tw, "FARM\tSEASON\tTOTAL (kg CO2e)\tPER HA\tINTENSITY\tSTATUS")
	for _, res := range rounded {
		if res.Report == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\n", res.Name, res.Error)
			continue
		}
		r := res.Report
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\tok\n",
			res.Name, r.Metadata.Season,
			greenops.FormatFloat(r.Emissions.Total, precision),
			greenops.FormatFloat(r.Metrics.EmissionsPerHectare, precision),
			r.Metrics.CarbonIntensity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d farms: %d succeeded, %d failed in %s\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.Elapsed.Round(time.Millisecond))
	return err
}
