package greenops

// Equivalency factors, from the EPA Greenhouse Gas Equivalencies Calculator.
// Each is the kg CO2e attributed to one unit of the activity:
//
//	equivalency = kg_CO2e / factor
const (
	// MilesDrivenFactor is kg CO2e per mile driven by an average passenger
	// vehicle.
	MilesDrivenFactor = 0.393

	// TreeSeedlingFactor is kg CO2e absorbed by one tree seedling grown for
	// ten years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e of one day of average household electricity use.
	HomeDayFactor = 20.5
)

// Unit conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest value equivalencies are shown
	// for. Below it the results become meaninglessly small.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// MonthsPerYear is used to annualize monthly farm emissions.
const MonthsPerYear = 12
