package farm

import (
	"maps"
	"math"
	"sort"
)

// Record is a snapshot of the farm data a report is computed from.
//
// Season may be left empty when the caller asks for the season to be
// derived from a month. Categorical fields are checked against the factor
// table by the calculator; Validate covers the numeric ones.
type Record struct {
	AreaHectares      float64         `json:"area_hectares"       yaml:"area_hectares"`
	Season            Season          `json:"season,omitempty"    yaml:"season,omitempty"`
	FarmingMethod     FarmingMethod   `json:"farming_method"      yaml:"farming_method"`
	FertilizerLevel   FertilizerLevel `json:"fertilizer_level"    yaml:"fertilizer_level"`
	Livestock         map[string]int  `json:"livestock"           yaml:"livestock"`
	MonthlyFuelLiters float64         `json:"monthly_fuel_liters" yaml:"monthly_fuel_liters"`
}

// Validate checks the numeric fields of the record.
//
// The area must be a finite value greater than zero, fuel a finite value of
// at least zero, and every livestock count non-negative.
func (r Record) Validate() error {
	if math.IsNaN(r.AreaHectares) || math.IsInf(r.AreaHectares, 0) || r.AreaHectares <= 0 {
		return NewInvalidRange(FieldAreaHectares, r.AreaHectares, "must be a finite number greater than 0")
	}
	if math.IsNaN(r.MonthlyFuelLiters) || math.IsInf(r.MonthlyFuelLiters, 0) || r.MonthlyFuelLiters < 0 {
		return NewInvalidRange(FieldMonthlyFuelLiters, r.MonthlyFuelLiters, "must be a finite number of at least 0")
	}
	for _, animal := range r.AnimalTypes() {
		if count := r.Livestock[animal]; count < 0 {
			return &InvalidInputError{
				Field:  FieldLivestock,
				Value:  animal,
				Reason: "count for " + animal + " must not be negative",
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Livestock != nil {
		out.Livestock = maps.Clone(r.Livestock)
	}
	return out
}

// AnimalTypes returns the livestock keys in sorted order.
func (r Record) AnimalTypes() []string {
	keys := make([]string, 0, len(r.Livestock))
	for k := range r.Livestock {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasLivestock reports whether the farm keeps at least one animal.
func (r Record) HasLivestock() bool {
	for _, count := range r.Livestock {
		if count > 0 {
			return true
		}
	}
	return false
}
