package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ecosystemplus/farmcarbon/internal/greenops"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/tui"
)

// reportDocument is the JSON form of a report, with its store ID when saved.
type reportDocument struct {
	ID string `json:"id,omitempty"`
	report.Report
}

// renderReport writes r in format. Reports are rounded to precision decimal
// places for presentation only.
func renderReport(w io.Writer, format string, r report.Report, id string, precision int) error {
	rounded := r.Rounded(precision)
	switch format {
	case outputJSON:
		return writeJSON(w, reportDocument{ID: id, Report: rounded}, true)
	case outputNDJSON:
		return writeJSON(w, reportDocument{ID: id, Report: rounded}, false)
	}

	if tui.DetectOutputMode(false, false, false) == tui.OutputModeStyled {
		_, err := fmt.Fprintln(w, tui.RenderReportDetail(rounded, tui.TerminalWidth()))
		if err == nil && id != "" {
			_, err = fmt.Fprintf(w, "Saved as %s\n", id)
		}
		return err
	}
	return renderPlainReport(w, rounded, id, precision)
}

// renderPlainReport writes an unstyled text report.
func renderPlainReport(w io.Writer, r report.Report, id string, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.

	fmt.Fprintf(tw, "EMISSION REPORT\n")
	fmt.Fprintf(tw, "Farm:\t%s ha, %s, %s fertilizer, %s L fuel/month\n",
		formatNumber(r.Farm.AreaHectares), r.Farm.FarmingMethod, r.Farm.FertilizerLevel,
		formatNumber(r.Farm.MonthlyFuelLiters))
	if r.Farm.HasLivestock() {
		animals := make([]string, 0, len(r.Farm.Livestock))
		for _, a := range r.Farm.AnimalTypes() {
			animals = append(animals, fmt.Sprintf("%s=%d", a, r.Farm.Livestock[a]))
		}
		fmt.Fprintf(tw, "Animals:\t%s\n", strings.Join(animals, ", "))
	}
	fmt.Fprintf(tw, "Season:\t%s\n", seasonText(r.Metadata))
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Fertilizer:\t%s\n", greenops.FormatEmissions(r.Emissions.Fertilizer, precision))
	fmt.Fprintf(tw, "Livestock:\t%s\n", greenops.FormatEmissions(r.Emissions.Livestock, precision))
	fmt.Fprintf(tw, "Fuel:\t%s\n", greenops.FormatEmissions(r.Emissions.Fuel, precision))
	fmt.Fprintf(tw, "Total:\t%s / month\n", greenops.FormatEmissions(r.Emissions.Total, precision))
	fmt.Fprintf(tw, "Per year:\t%s\n", greenops.FormatEmissions(greenops.Annualize(r.Emissions.Total), precision))
	fmt.Fprintf(tw, "Per hectare:\t%s (%s intensity)\n",
		greenops.FormatEmissions(r.Metrics.EmissionsPerHectare, precision), r.Metrics.CarbonIntensity)
	if err := tw.Flush(); err != nil {
		return err
	}

	if eq := greenops.ForEmissions(r.Emissions.Total); !eq.IsEmpty {
		fmt.Fprintln(w, eq.DisplayText)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "RECOMMENDATIONS")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s, factors v%s, calculated %s\n",
		r.Metadata.Methodology, r.Metadata.FactorVersion, r.Metadata.GeneratedAt.Format(time.RFC3339))
	if id != "" {
		fmt.Fprintf(w, "Saved as %s\n", id)
	}
	return nil
}

func seasonText(m report.Metadata) string {
	if m.SeasonSource == report.SeasonSourceMonth && m.Month > 0 {
		return fmt.Sprintf("%s (from %s)", m.Season, time.Month(m.Month))
	}
	return string(m.Season)
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// writeJSON encodes v, indented or as a single line.
func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
