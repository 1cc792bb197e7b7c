package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/ecosystemplus/farmcarbon/internal/calculator"
	"github.com/ecosystemplus/farmcarbon/internal/greenops"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/store"
)

// Layout constants.
const (
	borderPadding   = 2
	barWidth        = 24
	displayDecimals = 2
	percent         = 100
)

// RenderReportSummary renders a boxed summary of r: totals, the per-source
// breakdown and the carbon equivalency line. width is the total box width.
func RenderReportSummary(r report.Report, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("EMISSION REPORT"))
	content.WriteString("\n")

	writeField(&content, "Total:", formatEmissions(r.Emissions.Total)+" / month")
	writeField(&content, "Per hectare:", formatEmissions(r.Metrics.EmissionsPerHectare))
	content.WriteString(LabelStyle.Render(fmt.Sprintf("%-14s", "Intensity:")))
	content.WriteString(RenderIntensity(r.Metrics.CarbonIntensity))
	content.WriteString("\n")
	writeField(&content, "Farm:", fmt.Sprintf("%s ha, %s, %s fertilizer",
		strconv.FormatFloat(r.Farm.AreaHectares, 'f', -1, 64), r.Farm.FarmingMethod, r.Farm.FertilizerLevel))
	writeField(&content, "Season:", seasonLabel(r.Metadata))
	content.WriteString("\n")

	content.WriteString(HeaderStyle.Render("BREAKDOWN"))
	content.WriteString("\n")
	content.WriteString(RenderBreakdown(r.Emissions))

	if eq := greenops.ForEmissions(r.Emissions.Total); !eq.IsEmpty {
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render(eq.DisplayText))
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

func formatEmissions(kg float64) string {
	return greenops.FormatEmissions(report.Round(kg, displayDecimals), displayDecimals)
}

func formatAmount(v float64) string {
	return greenops.FormatFloat(report.Round(v, displayDecimals), displayDecimals)
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%-14s", label)))
	b.WriteString(ValueStyle.Render(value))
	b.WriteString("\n")
}

func seasonLabel(m report.Metadata) string {
	if m.SeasonSource == report.SeasonSourceMonth && m.Month > 0 {
		return fmt.Sprintf("%s (from %s)", m.Season, time.Month(m.Month))
	}
	return string(m.Season)
}

// RenderBreakdown renders one bar per emission source, scaled to its share
// of the total.
func RenderBreakdown(b calculator.Breakdown) string {
	sources := []struct {
		name  string
		value float64
	}{
		{"Fertilizer", b.Fertilizer},
		{"Livestock", b.Livestock},
		{"Fuel", b.Fuel},
	}

	var sb strings.Builder
	for _, src := range sources {
		share := 0.0
		if b.Total > 0 {
			share = src.value / b.Total
		}
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-11s", src.name)))
		sb.WriteString(renderBar(share))
		sb.WriteString(" ")
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%10s", formatAmount(src.value))))
		sb.WriteString(LabelStyle.Render(fmt.Sprintf(" (%.1f%%)", share*percent)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderBar(share float64) string {
	filled := int(share*barWidth + 0.5)
	filled = min(max(filled, 0), barWidth)
	return HeaderStyle.Render(strings.Repeat("█", filled)) +
		InfoStyle.Render(strings.Repeat("░", barWidth-filled))
}

// RenderRecommendations renders the numbered recommendation list.
func RenderRecommendations(recs []string) string {
	if len(recs) == 0 {
		return InfoStyle.Render("No recommendations.")
	}
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("RECOMMENDATIONS"))
	sb.WriteString("\n")
	for i, rec := range recs {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%d. ", i+1)))
		sb.WriteString(rec)
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderReportDetail renders everything about r: the summary box followed
// by the recommendations and calculation metadata.
func RenderReportDetail(r report.Report, width int) string {
	var sb strings.Builder
	sb.WriteString(RenderReportSummary(r, width))
	sb.WriteString("\n\n")
	sb.WriteString(RenderRecommendations(r.Recommendations))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf("%s, factors v%s, calculated %s",
		r.Metadata.Methodology, r.Metadata.FactorVersion, r.Metadata.GeneratedAt.Format(time.RFC3339))))
	return sb.String()
}

// NewHistoryTable creates a table of stored report summaries.
func NewHistoryTable(summaries []store.Summary, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 26},        //nolint:mnd // Column width.
		{Title: "Generated", Width: 17}, //nolint:mnd // Column width.
		{Title: "Method", Width: 13},    //nolint:mnd // Column width.
		{Title: "Season", Width: 6},     //nolint:mnd // Column width.
		{Title: "Total", Width: 12},     //nolint:mnd // Column width.
		{Title: "Per ha", Width: 10},    //nolint:mnd // Column width.
		{Title: "Intensity", Width: 10}, //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(summaries))
	for i, s := range summaries {
		rows[i] = table.Row{
			s.ID,
			s.GeneratedAt.Format("2006-01-02 15:04"),
			s.FarmingMethod,
			s.Season,
			formatAmount(s.TotalEmissions),
			formatAmount(s.EmissionsPerHectare),
			string(s.CarbonIntensity),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	st := table.DefaultStyles()
	st.Header = TableHeaderStyle
	st.Selected = TableSelectedStyle
	t.SetStyles(st)

	return t
}

// RenderLoadingIndicator renders the recalculation indicator.
func RenderLoadingIndicator() string {
	return SpinnerStyle.Render("Recalculating emissions...")
}
