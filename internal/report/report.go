// Package report assembles emission reports from farm records.
//
// An Assembler combines the calculator, the intensity classification and the
// recommendation engine into a single immutable Report value. It holds only
// read-only state and may be shared between goroutines.
package report

import (
	"math"
	"slices"
	"time"

	"github.com/ecosystemplus/farmcarbon/internal/calculator"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// SeasonSource records how the season of a report was determined.
type SeasonSource string

// Season sources.
const (
	SeasonSourceExplicit SeasonSource = "explicit"
	SeasonSourceMonth    SeasonSource = "month"
)

// Metrics are the derived per-area figures of a report.
type Metrics struct {
	EmissionsPerHectare float64   `json:"emissions_per_hectare"`
	CarbonIntensity     Intensity `json:"carbon_intensity"`
}

// Metadata describes how a report was produced.
type Metadata struct {
	Season        farm.Season  `json:"season"`
	SeasonSource  SeasonSource `json:"season_source"`
	Month         int          `json:"month,omitempty"`
	Methodology   string       `json:"methodology"`
	FactorVersion string       `json:"factor_version"`
	GeneratedAt   time.Time    `json:"calculated_at"`
}

// Report is the complete emission report for one farm and one month.
type Report struct {
	Farm            farm.Record          `json:"farm_data"`
	Emissions       calculator.Breakdown `json:"emissions"`
	Metrics         Metrics              `json:"metrics"`
	Recommendations []string             `json:"recommendations"`
	Metadata        Metadata             `json:"calculation_info"`
}

// Clone returns a deep copy of r.
func (r Report) Clone() Report {
	out := r
	out.Farm = r.Farm.Clone()
	out.Recommendations = slices.Clone(r.Recommendations)
	return out
}

// Rounded returns a copy of r with every emission figure rounded to places
// decimal places. Only presentation layers should call it.
func (r Report) Rounded(places int) Report {
	out := r.Clone()
	out.Emissions = calculator.Breakdown{
		Fertilizer: Round(r.Emissions.Fertilizer, places),
		Livestock:  Round(r.Emissions.Livestock, places),
		Fuel:       Round(r.Emissions.Fuel, places),
		Total:      Round(r.Emissions.Total, places),
	}
	out.Metrics.EmissionsPerHectare = Round(r.Metrics.EmissionsPerHectare, places)
	return out
}

// Round rounds v half away from zero to places decimal places.
// A negative places value returns v unchanged.
func Round(v float64, places int) float64 {
	if places < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
