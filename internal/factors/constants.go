package factors

import "github.com/ecosystemplus/farmcarbon/internal/farm"

// Default factor values. Livestock factors are published per animal per year
// and converted to monthly values by dividing by monthsPerYear.
const (
	// DefaultVersion is the version of the built-in factor table.
	DefaultVersion = "2.0.0"

	// DefaultMethodology tags reports produced with the built-in table.
	DefaultMethodology = "ecosystemplus-original"

	// FertilizerEmissionFactor is kg CO2e per unit of applied fertilizer.
	FertilizerEmissionFactor = 1.3

	// FuelEmissionFactor is kg CO2e per liter of fuel burned.
	FuelEmissionFactor = 2.68

	monthsPerYear = 12
)

// Annual livestock emissions in kg CO2e per animal.
const (
	CattleAnnualKg  = 2200.0
	GoatAnnualKg    = 144.0
	SheepAnnualKg   = 160.0
	RamsAnnualKg    = 160.0
	PigsAnnualKg    = 350.0
	PoultryAnnualKg = 10.0
)

// defaultSpec returns a fresh copy of the built-in factor description.
func defaultSpec() Spec {
	return Spec{
		Version:     DefaultVersion,
		Methodology: DefaultMethodology,
		FertilizerBase: map[farm.FertilizerLevel]float64{
			farm.FertilizerNone:   0,
			farm.FertilizerLow:    36,  // 0-50 kg/ha/year
			farm.FertilizerMedium: 66,  // 51-100 kg/ha/year
			farm.FertilizerHigh:   110, // >100 kg/ha/year
		},
		FertilizerConstant: FertilizerEmissionFactor,
		Livestock: map[string]float64{
			"cattle":  CattleAnnualKg / monthsPerYear,
			"goat":    GoatAnnualKg / monthsPerYear,
			"sheep":   SheepAnnualKg / monthsPerYear,
			"rams":    RamsAnnualKg / monthsPerYear,
			"pigs":    PigsAnnualKg / monthsPerYear,
			"poultry": PoultryAnnualKg / monthsPerYear,
		},
		FuelConstant: FuelEmissionFactor,
		Methods: map[farm.FarmingMethod]float64{
			farm.MethodConventional: 1.0,
			farm.MethodOrganic:      0.7,
			farm.MethodAgroforestry: 0.8,
			farm.MethodConservation: 0.85,
			farm.MethodPermaculture: 0.75,
		},
		Seasons: map[farm.Season]SeasonFactors{
			farm.SeasonDry:   {Fertilizer: 1.2, Livestock: 1.1, Fuel: 1.0},
			farm.SeasonRainy: {Fertilizer: 0.8, Livestock: 0.9, Fuel: 1.2},
		},
	}
}
