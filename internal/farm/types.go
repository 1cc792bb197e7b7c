// Package farm defines the farm snapshot consumed by the emission pipeline
// and the InvalidInput error every pipeline stage reports.
package farm

// Season is the climate regime used to pick seasonal emission factors.
type Season string

// Recognized seasons.
const (
	SeasonDry   Season = "dry"
	SeasonRainy Season = "rainy"
)

// FarmingMethod is the cultivation practice that scales all emission sources.
type FarmingMethod string

// Recognized farming methods.
const (
	MethodConventional FarmingMethod = "conventional"
	MethodOrganic      FarmingMethod = "organic"
	MethodAgroforestry FarmingMethod = "agroforestry"
	MethodConservation FarmingMethod = "conservation"
	MethodPermaculture FarmingMethod = "permaculture"
)

// FertilizerLevel is a categorical proxy for applied nitrogen per hectare.
type FertilizerLevel string

// Recognized fertilizer levels.
const (
	FertilizerNone   FertilizerLevel = "none"
	FertilizerLow    FertilizerLevel = "low"
	FertilizerMedium FertilizerLevel = "medium"
	FertilizerHigh   FertilizerLevel = "high"
)

// Wire names of the record fields, used in InvalidInputError.Field.
const (
	FieldAreaHectares      = "area_hectares"
	FieldSeason            = "season"
	FieldFarmingMethod     = "farming_method"
	FieldFertilizerLevel   = "fertilizer_level"
	FieldLivestock         = "livestock"
	FieldMonthlyFuelLiters = "monthly_fuel_liters"
	FieldMonth             = "month"
)
