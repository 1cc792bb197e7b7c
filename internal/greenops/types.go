// Package greenops expresses farm emissions as everyday equivalencies.
//
// Monthly kg CO2e figures are abstract for most farmers; the package
// converts them into miles driven, tree seedlings needed to absorb the
// same amount, and days of household electricity.
package greenops

import "fmt"

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

// Equivalency types, in display order.
const (
	EquivalencyMilesDriven EquivalencyType = iota
	EquivalencyTreeSeedlings
	EquivalencyHomeDays
)

func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is an emission amount in a given unit.
type CarbonInput struct {
	Value float64 `json:"value"`
	// Unit is one of g, kg, t, lb or their CO2e variants.
	Unit string `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one input.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form shown under a report.
	// Example: "Equivalent to driving ~3,869 miles; ~25 tree seedlings grown for 10 years absorb the same"
	DisplayText string `json:"display_text"`

	// CompactText is the short form used in tables.
	// Example: "(≈ 3,869 mi, 25 seedlings)"
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Result returns the result of type kind, if present.
func (o EquivalencyOutput) Result(kind EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == kind {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}
