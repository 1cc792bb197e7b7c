package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecosystemplus/farmcarbon/internal/cli/pagination"
	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/export"
	"github.com/ecosystemplus/farmcarbon/internal/greenops"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/store"
	"github.com/ecosystemplus/farmcarbon/internal/tui"
)

// defaultExportLimit bounds history export when --limit is not given.
const defaultExportLimit = 100

// NewHistoryListCmd creates the history list command.
func NewHistoryListCmd() *cobra.Command {
	var (
		params  pagination.PaginationParams
		sortBy  string
		filters []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Long: `Lists saved reports, newest first unless --sort says otherwise.

Sort fields: area, generated, per_hectare, total (append :asc or :desc).
Filters: method=VALUE, season=VALUE, intensity=VALUE (repeatable).`,
		Example: `  farmcarbon history list --limit 20
  farmcarbon history list --sort total:desc --filter method=organic
  farmcarbon history list --page 2 --limit 10 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}
			if err := params.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()

			q := store.Query{}
			if q.Sort, q.Descending, err = pagination.ParseSort(sortBy); err != nil {
				return err
			}
			if err := ApplyFilters(ctx, &q, filters); err != nil {
				return err
			}
			q.Offset, q.Limit = params.CalculateOffsetLimit()

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			entries, total, err := st.List(ctx, q)
			if err != nil {
				return err
			}
			precision := config.GetOutputPrecision()
			summaries := make([]store.Summary, 0, len(entries))
			for _, e := range entries {
				e.Report = e.Report.Rounded(precision)
				summaries = append(summaries, e.Summary())
			}
			if err := renderHistory(cmd.OutOrStdout(), format, summaries, precision); err != nil {
				return err
			}
			if format == outputTable && total > 0 {
				meta := pagination.NewPaginationMeta(params, int(total))
				cmd.Printf("\nShowing %d of %d reports (page %d of %d)\n",
					len(summaries), meta.TotalItems, meta.CurrentPage, meta.TotalPages)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&params.Limit, "limit", pagination.DefaultLimit, "number of reports to list (page size with --page)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "number of reports to skip")
	cmd.Flags().IntVar(&params.Page, "page", 0, "1-based page number")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort as field[:asc|desc]")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson")
	return cmd
}

func renderHistory(w io.Writer, format string, summaries []store.Summary, precision int) error {
	switch format {
	case outputJSON:
		return writeJSON(w, summaries, true)
	case outputNDJSON:
		for _, s := range summaries {
			if err := writeJSON(w, s, false); err != nil {
				return err
			}
		}
		return nil
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No saved reports.")
		return err
	}
	if tui.DetectOutputMode(false, false, false) == tui.OutputModeStyled {
		_, err := fmt.Fprintln(w, tui.NewHistoryTable(summaries, len(summaries)).View())
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.
	fmt.Fprintln(tw, "ID\tGENERATED\tAREA (ha)\tMETHOD\tSEASON\tTOTAL (kg CO2e)\tINTENSITY")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.GeneratedAt.Format("2006-01-02 15:04"), formatNumber(s.FarmArea),
			s.FarmingMethod, s.Season, greenops.FormatFloat(s.TotalEmissions, precision), s.CarbonIntensity)
	}
	return tw.Flush()
}

// NewHistoryStatsCmd creates the history stats command.
func NewHistoryStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over all saved reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output, outputTable, outputJSON)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			stats, err := st.Statistics(ctx)
			if err != nil {
				return err
			}
			precision := config.GetOutputPrecision()
			stats.AvgEmissions = report.Round(stats.AvgEmissions, precision)
			stats.MaxEmissions = report.Round(stats.MaxEmissions, precision)
			stats.MinEmissions = report.Round(stats.MinEmissions, precision)
			stats.AvgEmissionsPerHectare = report.Round(stats.AvgEmissionsPerHectare, precision)
			if format == outputJSON {
				return writeJSON(cmd.OutOrStdout(), stats, true)
			}
			return renderStatistics(cmd.OutOrStdout(), stats, precision)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

func renderStatistics(w io.Writer, s store.Statistics, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.
	fmt.Fprintf(tw, "Reports:\t%d\n", s.TotalReports)
	fmt.Fprintf(tw, "Average total:\t%s\n", greenops.FormatEmissions(s.AvgEmissions, precision))
	fmt.Fprintf(tw, "Highest total:\t%s\n", greenops.FormatEmissions(s.MaxEmissions, precision))
	fmt.Fprintf(tw, "Lowest total:\t%s\n", greenops.FormatEmissions(s.MinEmissions, precision))
	fmt.Fprintf(tw, "Average per hectare:\t%s\n", greenops.FormatEmissions(s.AvgEmissionsPerHectare, precision))
	writeDistribution(tw, "Farming methods:", s.FarmingMethodBreakdown)
	writeDistribution(tw, "Carbon intensity:", s.IntensityDistribution)
	return tw.Flush()
}

func writeDistribution(w io.Writer, title string, counts map[string]int64) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\t\n", title)
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %s\t%d\n", k, counts[k])
	}
}

// NewHistoryExportCmd creates the history export command.
func NewHistoryExportCmd() *cobra.Command {
	var (
		limit int
		xlsx  string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export saved reports to an Excel workbook",
		Example: `  farmcarbon history export --xlsx reports.xlsx --limit 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			entries, err := st.Recent(ctx, limit)
			if err != nil {
				return err
			}
			rows := make([]export.Row, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, export.Row{ID: e.ID, Report: e.Report})
			}
			if err := export.SaveXLSX(xlsx, rows, config.GetOutputPrecision()); err != nil {
				return err
			}
			cmd.Printf("Exported %d reports to %s\n", len(rows), xlsx)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultExportLimit, "number of recent reports to export")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Excel file to write")
	_ = cmd.MarkFlagRequired("xlsx")
	return cmd
}
