// Package export writes reports to Excel workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// Sheet names.
const (
	SheetReports         = "Reports"
	SheetRecommendations = "Recommendations"
	SheetLivestock       = "Livestock"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("export: no reports to write")

// Row is one report to export. ID and Name are optional labels.
type Row struct {
	ID     string
	Name   string
	Report report.Report
}

func reportHeader() []any {
	return []any{
		"ID", "Name", "Generated At", "Area (ha)", "Season", "Farming Method",
		"Fertilizer Level", "Fertilizer (kg CO2e)", "Livestock (kg CO2e)",
		"Fuel (kg CO2e)", "Total (kg CO2e)", "Per Hectare (kg CO2e)",
		"Intensity", "Methodology", "Factor Version",
	}
}

// Workbook builds a workbook with one sheet of headline figures, one of
// recommendations and one of livestock counts. Figures are rounded to
// precision decimal places. The caller must Close the returned file.
func Workbook(rows []Row, precision int) (*excelize.File, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetReports); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range []string{SheetRecommendations, SheetLivestock} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if err := writeSheets(f, rows, precision); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheets(f *excelize.File, rows []Row, precision int) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	headers := map[string][]any{
		SheetReports:         reportHeader(),
		SheetRecommendations: {"ID", "Name", "#", "Recommendation"},
		SheetLivestock:       {"ID", "Name", "Animal", "Count"},
	}
	for sheet, cols := range headers {
		if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(cols), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
			return err
		}
	}

	recLine, animalLine := 2, 2
	for i, row := range rows {
		r := row.Report.Rounded(precision)
		values := []any{
			row.ID, row.Name, r.Metadata.GeneratedAt.Format(time.RFC3339),
			r.Farm.AreaHectares, string(r.Metadata.Season), string(r.Farm.FarmingMethod),
			string(r.Farm.FertilizerLevel), r.Emissions.Fertilizer, r.Emissions.Livestock,
			r.Emissions.Fuel, r.Emissions.Total, r.Metrics.EmissionsPerHectare,
			string(r.Metrics.CarbonIntensity), r.Metadata.Methodology, r.Metadata.FactorVersion,
		}
		if err := f.SetSheetRow(SheetReports, "A"+strconv.Itoa(i+2), &values); err != nil {
			return fmt.Errorf("writing report row %d: %w", i+1, err)
		}

		for n, tip := range r.Recommendations {
			line := []any{row.ID, row.Name, n + 1, tip}
			if err := f.SetSheetRow(SheetRecommendations, "A"+strconv.Itoa(recLine), &line); err != nil {
				return fmt.Errorf("writing recommendation row: %w", err)
			}
			recLine++
		}

		for _, animal := range r.Farm.AnimalTypes() {
			line := []any{row.ID, row.Name, animal, r.Farm.Livestock[animal]}
			if err := f.SetSheetRow(SheetLivestock, "A"+strconv.Itoa(animalLine), &line); err != nil {
				return fmt.Errorf("writing livestock row: %w", err)
			}
			animalLine++
		}
	}

	if err := f.SetColWidth(SheetReports, "A", "O", 18); err != nil {
		return err
	}
	return f.SetColWidth(SheetRecommendations, "D", "D", 80)
}

// WriteXLSX writes the workbook for rows to w.
func WriteXLSX(w io.Writer, rows []Row, precision int) error {
	f, err := Workbook(rows, precision)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for rows to path.
func SaveXLSX(path string, rows []Row, precision int) error {
	f, err := Workbook(rows, precision)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}
