// Package calculator implements the three monthly emission formulas
// (fertilizer, livestock, fuel) over a factor table.
//
// All functions are pure: they read only their arguments and the immutable
// table, so identical inputs always produce bit-identical results and the
// functions are safe for concurrent use. Every result is in kg CO2e/month.
package calculator

import (
	"math"

	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// Breakdown holds the per-source emissions of one farm for one month.
// Total is always the exact sum of the three components.
type Breakdown struct {
	Fertilizer float64 `json:"fertilizer_emissions"`
	Livestock  float64 `json:"livestock_emissions"`
	Fuel       float64 `json:"fuel_emissions"`
	Total      float64 `json:"total_emissions"`
}

// NewBreakdown returns a Breakdown whose Total is the sum of the components.
func NewBreakdown(fertilizer, livestock, fuel float64) Breakdown {
	return Breakdown{
		Fertilizer: fertilizer,
		Livestock:  livestock,
		Fuel:       fuel,
		Total:      fertilizer + livestock + fuel,
	}
}

// Fertilizer returns emissions from fertilizer application.
//
//	amount    = base[level] × area
//	emissions = amount × fertilizerConstant × season.Fertilizer × multiplier[method]
func Fertilizer(
	t *factors.Table,
	areaHectares float64,
	level farm.FertilizerLevel,
	method farm.FarmingMethod,
	season farm.Season,
) (float64, error) {
	base, err := t.FertilizerBase(level)
	if err != nil {
		return 0, err
	}
	multiplier, seasonal, err := commonFactors(t, method, season)
	if err != nil {
		return 0, err
	}
	if !isFinite(areaHectares) || areaHectares <= 0 {
		return 0, farm.NewInvalidRange(farm.FieldAreaHectares, areaHectares, "must be a finite number greater than 0")
	}

	amount := base * areaHectares
	emissions := amount * t.FertilizerConstant()
	emissions *= seasonal.Fertilizer
	return emissions * multiplier, nil
}

// Livestock returns emissions from the animals kept on the farm.
//
// Each key of livestock must be a recognized animal type and each count must
// be non-negative. Keys are summed in sorted order so that the floating point
// result does not depend on map iteration order. An empty map yields 0.
func Livestock(
	t *factors.Table,
	livestock map[string]int,
	method farm.FarmingMethod,
	season farm.Season,
) (float64, error) {
	multiplier, seasonal, err := commonFactors(t, method, season)
	if err != nil {
		return 0, err
	}

	herd := farm.Record{Livestock: livestock}
	var total float64
	for _, animal := range herd.AnimalTypes() {
		perAnimal, err := t.AnimalFactor(animal)
		if err != nil {
			return 0, err
		}
		count := livestock[animal]
		if count < 0 {
			return 0, &farm.InvalidInputError{
				Field:  farm.FieldLivestock,
				Value:  animal,
				Reason: "count for " + animal + " must not be negative",
			}
		}
		total += float64(count) * perAnimal
	}

	emissions := total * seasonal.Livestock
	return emissions * multiplier, nil
}

// Fuel returns emissions from fuel burned in farm machinery.
//
//	emissions = liters × fuelConstant × season.Fuel × multiplier[method]
func Fuel(
	t *factors.Table,
	monthlyLiters float64,
	method farm.FarmingMethod,
	season farm.Season,
) (float64, error) {
	multiplier, seasonal, err := commonFactors(t, method, season)
	if err != nil {
		return 0, err
	}
	if !isFinite(monthlyLiters) || monthlyLiters < 0 {
		return 0, farm.NewInvalidRange(farm.FieldMonthlyFuelLiters, monthlyLiters, "must be a finite number of at least 0")
	}

	emissions := monthlyLiters * t.FuelConstant()
	emissions *= seasonal.Fuel
	return emissions * multiplier, nil
}

// Calculate runs all three formulas for rec in the given season.
// The season argument takes precedence over rec.Season.
func Calculate(t *factors.Table, rec farm.Record, season farm.Season) (Breakdown, error) {
	fertilizer, err := Fertilizer(t, rec.AreaHectares, rec.FertilizerLevel, rec.FarmingMethod, season)
	if err != nil {
		return Breakdown{}, err
	}
	livestock, err := Livestock(t, rec.Livestock, rec.FarmingMethod, season)
	if err != nil {
		return Breakdown{}, err
	}
	fuel, err := Fuel(t, rec.MonthlyFuelLiters, rec.FarmingMethod, season)
	if err != nil {
		return Breakdown{}, err
	}
	return NewBreakdown(fertilizer, livestock, fuel), nil
}

// commonFactors resolves the method multiplier and seasonal factors shared by
// all three formulas, validating method before season.
func commonFactors(t *factors.Table, method farm.FarmingMethod, season farm.Season) (float64, factors.SeasonFactors, error) {
	multiplier, err := t.MethodMultiplier(method)
	if err != nil {
		return 0, factors.SeasonFactors{}, err
	}
	seasonal, err := t.SeasonFactors(season)
	if err != nil {
		return 0, factors.SeasonFactors{}, err
	}
	return multiplier, seasonal, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
