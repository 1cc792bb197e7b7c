package report

// Intensity is the carbon intensity class of a farm, derived from its monthly
// emissions per hectare.
type Intensity string

// Intensity classes.
const (
	IntensityUnknown  Intensity = "unknown"
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

// Upper bounds (exclusive) of the intensity classes in kg CO2e per hectare
// per month.
const (
	LowIntensityLimit    = 1000.0
	MediumIntensityLimit = 3000.0
	HighIntensityLimit   = 5000.0
)

// Intensities lists the classes from lowest to highest, with unknown last.
func Intensities() []Intensity {
	return []Intensity{IntensityLow, IntensityMedium, IntensityHigh, IntensityVeryHigh, IntensityUnknown}
}

// PerHectare returns total divided by area, or 0 when area is not positive.
func PerHectare(total, areaHectares float64) float64 {
	if areaHectares <= 0 {
		return 0
	}
	return total / areaHectares
}

// ClassifyIntensity returns the intensity class for total monthly emissions
// spread over areaHectares. A non-positive area is classified as unknown.
func ClassifyIntensity(total, areaHectares float64) Intensity {
	if areaHectares <= 0 {
		return IntensityUnknown
	}
	switch perHectare := total / areaHectares; {
	case perHectare < LowIntensityLimit:
		return IntensityLow
	case perHectare < MediumIntensityLimit:
		return IntensityMedium
	case perHectare < HighIntensityLimit:
		return IntensityHigh
	default:
		return IntensityVeryHigh
	}
}
