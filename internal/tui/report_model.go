package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// ReportState represents the current state of the report TUI.
type ReportState int

const (
	// ReportStateEditing shows the editable farm properties.
	ReportStateEditing ReportState = iota
	// ReportStateDetail shows the scrollable report detail.
	ReportStateDetail
	// ReportStateQuitting indicates the application is exiting.
	ReportStateQuitting
	// ReportStateError indicates an unrecoverable error occurred.
	ReportStateError
)

// Property keys.
const (
	PropertyArea       = farm.FieldAreaHectares
	PropertyMethod     = farm.FieldFarmingMethod
	PropertyFertilizer = farm.FieldFertilizerLevel
	PropertySeason     = farm.FieldSeason
	PropertyFuel       = farm.FieldMonthlyFuelLiters
	livestockPrefix    = "livestock."
)

// PropertyRow is a single editable farm property.
type PropertyRow struct {
	Key           string
	OriginalValue string
	CurrentValue  string
}

// Changed reports whether the row differs from its original value.
func (p PropertyRow) Changed() bool { return p.CurrentValue != p.OriginalValue }

// RecalculateFunc produces a report for an edited record.
type RecalculateFunc func(ctx context.Context, rec farm.Record) (report.Report, error)

type reportRecalculatedMsg struct {
	report report.Report
	err    error
}

// Default dimensions.
const (
	reportDefaultWidth  = 80
	reportDefaultHeight = 24
	detailChromeHeight  = 4
	minViewportHeight   = 5
	propertyKeyWidth    = 22
	propertyValueWidth  = 16
)

// ReportModel is the Bubble Tea model for what-if exploration of a report.
// Edited properties are recalculated through the callback and compared
// against the baseline report.
type ReportModel struct {
	ctx context.Context

	baseline report.Report
	current  report.Report

	properties []PropertyRow
	focusedRow int
	editMode   bool
	editBuffer string
	inputErr   error

	state   ReportState
	loading bool
	err     error

	width    int
	height   int
	viewport viewport.Model

	recalculateFn RecalculateFunc
}

// NewReportModel creates a model around a baseline report. animalTypes are
// offered as livestock rows in addition to the animals the farm already
// keeps. A nil recalculateFn makes the model read-only.
func NewReportModel(
	ctx context.Context,
	baseline report.Report,
	animalTypes []string,
	recalculateFn RecalculateFunc,
) *ReportModel {
	m := &ReportModel{
		ctx:           ctx,
		baseline:      baseline,
		current:       baseline,
		state:         ReportStateEditing,
		width:         reportDefaultWidth,
		height:        reportDefaultHeight,
		viewport:      viewport.New(reportDefaultWidth, reportDefaultHeight-detailChromeHeight),
		recalculateFn: recalculateFn,
	}
	m.initializeProperties(animalTypes)
	m.refreshViewport()
	return m
}

func (m *ReportModel) initializeProperties(animalTypes []string) {
	rec := m.baseline.Farm
	m.properties = []PropertyRow{
		newPropertyRow(PropertyArea, formatFloat(rec.AreaHectares)),
		newPropertyRow(PropertyMethod, string(rec.FarmingMethod)),
		newPropertyRow(PropertyFertilizer, string(rec.FertilizerLevel)),
		newPropertyRow(PropertySeason, string(m.baseline.Metadata.Season)),
		newPropertyRow(PropertyFuel, formatFloat(rec.MonthlyFuelLiters)),
	}

	animals := slices.Clone(animalTypes)
	for _, a := range rec.AnimalTypes() {
		if !slices.Contains(animals, a) {
			animals = append(animals, a)
		}
	}
	slices.Sort(animals)
	for _, a := range animals {
		m.properties = append(m.properties, newPropertyRow(livestockPrefix+a, strconv.Itoa(rec.Livestock[a])))
	}
}

func newPropertyRow(key, value string) PropertyRow {
	return PropertyRow{Key: key, OriginalValue: value, CurrentValue: value}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Init initializes the model.
func (m *ReportModel) Init() tea.Cmd { return nil }

// Update handles messages and updates the model state.
func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-detailChromeHeight, minViewportHeight)
		m.refreshViewport()
		return m, nil

	case reportRecalculatedMsg:
		return m.handleRecalculated(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types.
func (m *ReportModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.state = ReportStateQuitting
		return m, tea.Quit
	}
	if m.editMode {
		return m.handleEditModeKey(msg)
	}
	if m.state == ReportStateDetail {
		return m.handleDetailKey(msg)
	}

	switch msg.Type {
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = ReportStateQuitting
			return m, tea.Quit
		case "r":
			m.reset()
		}
		return m, nil

	case tea.KeyTab:
		if m.state == ReportStateEditing {
			m.state = ReportStateDetail
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyUp:
		if m.focusedRow > 0 {
			m.focusedRow--
		}
		return m, nil

	case tea.KeyDown:
		if m.focusedRow < len(m.properties)-1 {
			m.focusedRow++
		}
		return m, nil

	case tea.KeyEnter:
		if m.recalculateFn != nil && m.state == ReportStateEditing && m.focusedRow < len(m.properties) {
			m.editMode = true
			m.editBuffer = m.properties[m.focusedRow].CurrentValue
		}
		return m, nil
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types.
func (m *ReportModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyEsc:
		m.state = ReportStateEditing
		return m, nil
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.state = ReportStateQuitting
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

//nolint:exhaustive // Only handling relevant key types for text editing.
func (m *ReportModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.properties[m.focusedRow].CurrentValue = strings.TrimSpace(m.editBuffer)
		m.editMode = false
		m.editBuffer = ""
		return m, m.triggerRecalculation()

	case tea.KeyEsc:
		m.editMode = false
		m.editBuffer = ""
		return m, nil

	case tea.KeyBackspace:
		runes := []rune(m.editBuffer)
		if len(runes) > 0 {
			m.editBuffer = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes:
		m.editBuffer += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

func (m *ReportModel) triggerRecalculation() tea.Cmd {
	rec, err := m.Record()
	if err != nil {
		m.inputErr = err
		return nil
	}
	m.loading = true

	ctx := m.ctx
	recalculateFn := m.recalculateFn
	return func() tea.Msg {
		r, err := recalculateFn(ctx, rec)
		return reportRecalculatedMsg{report: r, err: err}
	}
}

func (m *ReportModel) handleRecalculated(msg reportRecalculatedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, farm.ErrInvalidInput) {
			m.inputErr = msg.err
			return m, nil
		}
		m.err = msg.err
		m.state = ReportStateError
		return m, nil
	}
	m.inputErr = nil
	m.current = msg.report
	m.refreshViewport()
	return m, nil
}

func (m *ReportModel) reset() {
	for i := range m.properties {
		m.properties[i].CurrentValue = m.properties[i].OriginalValue
	}
	m.current = m.baseline
	m.inputErr = nil
	m.refreshViewport()
}

func (m *ReportModel) refreshViewport() {
	m.viewport.SetContent(RenderReportDetail(m.current, m.width))
}

// Record builds the farm record described by the current property values.
func (m *ReportModel) Record() (farm.Record, error) {
	rec := farm.Record{}
	for _, p := range m.properties {
		switch {
		case p.Key == PropertyArea:
			v, err := strconv.ParseFloat(p.CurrentValue, 64)
			if err != nil {
				return farm.Record{}, notANumber(farm.FieldAreaHectares, p.CurrentValue)
			}
			rec.AreaHectares = v
		case p.Key == PropertyFuel:
			v, err := strconv.ParseFloat(p.CurrentValue, 64)
			if err != nil {
				return farm.Record{}, notANumber(farm.FieldMonthlyFuelLiters, p.CurrentValue)
			}
			rec.MonthlyFuelLiters = v
		case p.Key == PropertyMethod:
			rec.FarmingMethod = farm.FarmingMethod(p.CurrentValue)
		case p.Key == PropertyFertilizer:
			rec.FertilizerLevel = farm.FertilizerLevel(p.CurrentValue)
		case p.Key == PropertySeason:
			rec.Season = farm.Season(p.CurrentValue)
		case strings.HasPrefix(p.Key, livestockPrefix):
			n, err := strconv.Atoi(p.CurrentValue)
			if err != nil {
				return farm.Record{}, notANumber(farm.FieldLivestock, p.CurrentValue)
			}
			if n == 0 {
				continue
			}
			if rec.Livestock == nil {
				rec.Livestock = make(map[string]int)
			}
			rec.Livestock[strings.TrimPrefix(p.Key, livestockPrefix)] = n
		}
	}
	return rec, nil
}

func notANumber(field, value string) error {
	return &farm.InvalidInputError{Field: field, Value: value, Reason: "must be a number"}
}

// Overrides returns the properties that differ from the baseline.
func (m *ReportModel) Overrides() map[string]string {
	out := make(map[string]string)
	for _, p := range m.properties {
		if p.Changed() {
			out[p.Key] = p.CurrentValue
		}
	}
	return out
}

// Properties returns a copy of the property rows.
func (m *ReportModel) Properties() []PropertyRow { return slices.Clone(m.properties) }

// Baseline returns the report the model started from.
func (m *ReportModel) Baseline() report.Report { return m.baseline }

// Current returns the report for the current property values.
func (m *ReportModel) Current() report.Report { return m.current }

// State returns the current state.
func (m *ReportModel) State() ReportState { return m.state }

// InputError returns the last rejected edit, if any.
func (m *ReportModel) InputError() error { return m.inputErr }

// View renders the current view.
func (m *ReportModel) View() string {
	switch m.state {
	case ReportStateQuitting:
		return ""
	case ReportStateError:
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	case ReportStateDetail:
		return HeaderStyle.Render("Report detail") + "\n\n" + m.viewport.View() + "\n" +
			HelpStyle.Render("↑/↓/PgUp/PgDn: Scroll | Tab/Esc: Back | q: Quit")
	case ReportStateEditing:
	}

	if m.loading {
		return RenderLoadingIndicator()
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("What-if Emission Analysis"))
	sb.WriteString("\n\n")
	sb.WriteString(RenderEmissionComparison(m.baseline, m.current))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderPropertyTable())
	if m.inputErr != nil {
		sb.WriteString("\n")
		sb.WriteString(CriticalStyle.Render(m.inputErr.Error()))
	}
	sb.WriteString("\n\n")
	sb.WriteString(HelpStyle.Render("↑/↓: Navigate | Enter: Edit | r: Reset | Tab: Detail | q: Quit"))
	return sb.String()
}

func (m *ReportModel) renderPropertyTable() string {
	var sb strings.Builder
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s %-*s %s\n",
		propertyKeyWidth, "Property", propertyValueWidth, "Original", "Current")))

	modified := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	for i, p := range m.properties {
		cursor := "  "
		if i == m.focusedRow {
			cursor = "> "
		}
		current := p.CurrentValue
		if m.editMode && i == m.focusedRow {
			current = m.editBuffer + "▌"
		}
		sb.WriteString(cursor)
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s ", propertyKeyWidth, p.Key)))
		sb.WriteString(fmt.Sprintf("%-*s ", propertyValueWidth, p.OriginalValue))
		if p.Changed() || (m.editMode && i == m.focusedRow) {
			sb.WriteString(modified.Render(current))
		} else {
			sb.WriteString(current)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderEmissionComparison renders baseline and current totals, the change
// between them and both intensity bands.
func RenderEmissionComparison(baseline, current report.Report) string {
	var sb strings.Builder
	sb.WriteString(LabelStyle.Render("Baseline:  "))
	sb.WriteString(ValueStyle.Render(formatEmissions(baseline.Emissions.Total)))
	sb.WriteString(" ")
	sb.WriteString(RenderIntensity(baseline.Metrics.CarbonIntensity))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Current:   "))
	sb.WriteString(ValueStyle.Render(formatEmissions(current.Emissions.Total)))
	sb.WriteString(" ")
	sb.WriteString(RenderIntensity(current.Metrics.CarbonIntensity))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Change:    "))
	sb.WriteString(RenderEmissionDelta(current.Emissions.Total - baseline.Emissions.Total))
	return sb.String()
}

// RenderEmissionDelta renders a signed change in kg CO2e. Reductions are
// green and increases red.
func RenderEmissionDelta(delta float64) string {
	color := ColorMuted
	sign := ""
	switch {
	case delta > deltaEpsilon:
		color = ColorVeryHigh
		sign = "+"
	case delta < -deltaEpsilon:
		color = ColorLow
	default:
		delta = 0
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(sign + formatEmissions(delta))
}

// deltaEpsilon is the smallest change shown as non-zero.
const deltaEpsilon = 0.005

// RunReportModel runs m full screen until the user quits and returns the
// final model.
func RunReportModel(ctx context.Context, m *ReportModel, opts ...tea.ProgramOption) (*ReportModel, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return m, fmt.Errorf("running report viewer: %w", err)
	}
	if fm, ok := final.(*ReportModel); ok {
		return fm, nil
	}
	return m, nil
}
