package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("214")
	ColorSpinner   = lipgloss.Color("69")
	ColorLow       = lipgloss.Color("42")
	ColorMedium    = lipgloss.Color("220")
	ColorHigh      = lipgloss.Color("208")
	ColorVeryHigh  = lipgloss.Color("196")
)

//nolint:gochecknoglobals // Shared immutable styles.
var (
	HeaderStyle        = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle         = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle         = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle        = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	CriticalStyle      = lipgloss.NewStyle().Foreground(ColorVeryHigh).Bold(true)
	InfoStyle          = lipgloss.NewStyle().Foreground(ColorMuted)
	HelpStyle          = lipgloss.NewStyle().Foreground(ColorMuted)
	BoxStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorHeader).Padding(0, 1)
	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Foreground(ColorHeader)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorValue).Background(ColorSpinner)
	SpinnerStyle       = lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true)
)

// IntensityColor returns the display color for an intensity band.
func IntensityColor(i report.Intensity) lipgloss.Color {
	switch i {
	case report.IntensityLow:
		return ColorLow
	case report.IntensityMedium:
		return ColorMedium
	case report.IntensityHigh:
		return ColorHigh
	case report.IntensityVeryHigh:
		return ColorVeryHigh
	default:
		return ColorMuted
	}
}

// RenderIntensity renders an intensity band in its color.
func RenderIntensity(i report.Intensity) string {
	return lipgloss.NewStyle().Foreground(IntensityColor(i)).Bold(true).Render(string(i))
}
