package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate normalizes input to kilograms and computes its equivalencies.
//
// Inputs below MinEquivalencyThresholdKg yield an empty output with InputKg
// set and no error. Invalid units, negative values and non-finite values
// return an empty output and the matching sentinel error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / MilesDrivenFactor
	seedlings := kg / TreeSeedlingFactor
	homeDays := kg / HomeDayFactor
	if math.IsInf(miles, 0) || math.IsNaN(miles) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatEquivalency(miles), Label: "miles driven"},
		{Type: EquivalencyTreeSeedlings, Value: seedlings, FormattedValue: formatEquivalency(seedlings), Label: "tree seedlings grown for 10 years"},
		{Type: EquivalencyHomeDays, Value: homeDays, FormattedValue: formatEquivalency(homeDays), Label: "days of household electricity"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles; ~%s tree seedlings grown for 10 years absorb the same",
			results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf("(≈ %s mi, %s seedlings)", results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// ForEmissions returns the equivalencies of kgCO2e kilograms. Calculation
// failures are logged and produce an empty output.
func ForEmissions(kgCO2e float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: kgCO2e, Unit: "kgCO2e"})
	if err != nil {
		log.Warn().Err(err).Float64("kg_co2e", kgCO2e).Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

func formatEquivalency(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
