package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

const tolerance = 0.01

var allMethods = []farm.FarmingMethod{
	farm.MethodConventional,
	farm.MethodOrganic,
	farm.MethodAgroforestry,
	farm.MethodConservation,
	farm.MethodPermaculture,
}

func TestFertilizer(t *testing.T) {
	table := factors.Default()

	tests := []struct {
		name   string
		area   float64
		level  farm.FertilizerLevel
		method farm.FarmingMethod
		season farm.Season
		want   float64
	}{
		{
			name:   "medium organic dry",
			area:   10,
			level:  farm.FertilizerMedium,
			method: farm.MethodOrganic,
			season: farm.SeasonDry,
			want:   720.72, // 66*10*1.3*1.2*0.7
		},
		{
			name:   "high conventional rainy",
			area:   2,
			level:  farm.FertilizerHigh,
			method: farm.MethodConventional,
			season: farm.SeasonRainy,
			want:   228.8, // 110*2*1.3*0.8
		},
		{
			name:   "none yields zero",
			area:   50,
			level:  farm.FertilizerNone,
			method: farm.MethodConventional,
			season: farm.SeasonDry,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fertilizer(table, tt.area, tt.level, tt.method, tt.season)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}
}

func TestFertilizer_InvalidInput(t *testing.T) {
	table := factors.Default()

	tests := []struct {
		name      string
		area      float64
		level     farm.FertilizerLevel
		method    farm.FarmingMethod
		season    farm.Season
		wantField string
	}{
		{"unknown level", 1, "extreme", farm.MethodOrganic, farm.SeasonDry, farm.FieldFertilizerLevel},
		{"unknown method", 1, farm.FertilizerLow, "biodynamic", farm.SeasonDry, farm.FieldFarmingMethod},
		{"unknown season", 1, farm.FertilizerLow, farm.MethodOrganic, "monsoon", farm.FieldSeason},
		{"zero area", 0, farm.FertilizerLow, farm.MethodOrganic, farm.SeasonDry, farm.FieldAreaHectares},
		{"negative area", -3, farm.FertilizerLow, farm.MethodOrganic, farm.SeasonDry, farm.FieldAreaHectares},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fertilizer(table, tt.area, tt.level, tt.method, tt.season)
			require.ErrorIs(t, err, farm.ErrInvalidInput)

			var invalid *farm.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestFertilizer_ErrorNamesAcceptedLevels(t *testing.T) {
	_, err := Fertilizer(factors.Default(), 1, "extreme", farm.MethodOrganic, farm.SeasonDry)

	var invalid *farm.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"none", "low", "medium", "high"}, invalid.Accepted)
	assert.Contains(t, err.Error(), "fertilizer_level")
}

func TestLivestock(t *testing.T) {
	table := factors.Default()

	t.Run("five cattle organic dry", func(t *testing.T) {
		got, err := Livestock(table, map[string]int{"cattle": 5}, farm.MethodOrganic, farm.SeasonDry)
		require.NoError(t, err)
		assert.InDelta(t, 705.83, got, tolerance)
	})

	t.Run("mixed herd conventional rainy", func(t *testing.T) {
		herd := map[string]int{"goat": 10, "poultry": 24, "pigs": 2}
		got, err := Livestock(table, herd, farm.MethodConventional, farm.SeasonRainy)
		require.NoError(t, err)
		// (10*12 + 24*10/12 + 2*350/12) * 0.9
		assert.InDelta(t, (120.0+20.0+700.0/12)*0.9, got, 1e-9)
	})

	t.Run("zero counts are allowed", func(t *testing.T) {
		got, err := Livestock(table, map[string]int{"sheep": 0}, farm.MethodOrganic, farm.SeasonDry)
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestLivestock_EmptyMapIsZero(t *testing.T) {
	table := factors.Default()
	for _, method := range allMethods {
		for _, s := range []farm.Season{farm.SeasonDry, farm.SeasonRainy} {
			got, err := Livestock(table, map[string]int{}, method, s)
			require.NoError(t, err)
			assert.Zero(t, got)

			got, err = Livestock(table, nil, method, s)
			require.NoError(t, err)
			assert.Zero(t, got)
		}
	}
}

func TestLivestock_UnknownAnimal(t *testing.T) {
	_, err := Livestock(factors.Default(), map[string]int{"cattle": 2, "dragon": 1}, farm.MethodOrganic, farm.SeasonDry)
	require.ErrorIs(t, err, farm.ErrInvalidInput)

	var invalid *farm.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, farm.FieldLivestock, invalid.Field)
	assert.Equal(t, "dragon", invalid.Value)
	assert.Contains(t, err.Error(), "dragon")
	assert.Contains(t, invalid.Accepted, "cattle")
}

func TestLivestock_NegativeCount(t *testing.T) {
	_, err := Livestock(factors.Default(), map[string]int{"goat": -1}, farm.MethodOrganic, farm.SeasonDry)
	require.ErrorIs(t, err, farm.ErrInvalidInput)
	assert.Contains(t, err.Error(), "goat")
}

func TestFuel(t *testing.T) {
	table := factors.Default()

	got, err := Fuel(table, 50, farm.MethodOrganic, farm.SeasonDry)
	require.NoError(t, err)
	assert.InDelta(t, 93.8, got, tolerance)

	got, err = Fuel(table, 100, farm.MethodConventional, farm.SeasonRainy)
	require.NoError(t, err)
	assert.InDelta(t, 321.6, got, tolerance) // 100*2.68*1.2

	got, err = Fuel(table, 0, farm.MethodPermaculture, farm.SeasonRainy)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestFuel_NegativeLiters(t *testing.T) {
	_, err := Fuel(factors.Default(), -0.5, farm.MethodOrganic, farm.SeasonDry)
	require.ErrorIs(t, err, farm.ErrInvalidInput)

	var invalid *farm.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, farm.FieldMonthlyFuelLiters, invalid.Field)
}

func TestCalculate_TotalIsExactSum(t *testing.T) {
	rec := farm.Record{
		AreaHectares:      3.7,
		FarmingMethod:     farm.MethodAgroforestry,
		FertilizerLevel:   farm.FertilizerLow,
		Livestock:         map[string]int{"goat": 7, "poultry": 31, "rams": 2},
		MonthlyFuelLiters: 12.25,
	}

	b, err := Calculate(factors.Default(), rec, farm.SeasonRainy)
	require.NoError(t, err)
	assert.Equal(t, b.Fertilizer+b.Livestock+b.Fuel, b.Total)
}

func TestCalculate_ScenarioBreakdown(t *testing.T) {
	rec := farm.Record{
		AreaHectares:      10,
		FarmingMethod:     farm.MethodOrganic,
		FertilizerLevel:   farm.FertilizerMedium,
		Livestock:         map[string]int{"cattle": 5},
		MonthlyFuelLiters: 50,
	}

	got, err := Calculate(factors.Default(), rec, farm.SeasonDry)
	require.NoError(t, err)

	want := Breakdown{Fertilizer: 720.72, Livestock: 705.83, Fuel: 93.8, Total: 1520.35}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tolerance)); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculate_IsPure(t *testing.T) {
	table := factors.Default()
	rec := farm.Record{
		AreaHectares:      1.3,
		FarmingMethod:     farm.MethodConservation,
		FertilizerLevel:   farm.FertilizerHigh,
		Livestock:         map[string]int{"cattle": 1, "goat": 3, "sheep": 5, "rams": 1, "pigs": 4, "poultry": 40},
		MonthlyFuelLiters: 17.9,
	}

	first, err := Calculate(table, rec, farm.SeasonDry)
	require.NoError(t, err)
	for range 50 {
		again, err := Calculate(table, rec, farm.SeasonDry)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculate_MethodLinearity(t *testing.T) {
	table := factors.Default()
	rec := farm.Record{
		AreaHectares:      4,
		FertilizerLevel:   farm.FertilizerMedium,
		Livestock:         map[string]int{"cattle": 2, "poultry": 12},
		MonthlyFuelLiters: 30,
	}

	baseline := rec
	baseline.FarmingMethod = farm.MethodConventional
	conventional, err := Calculate(table, baseline, farm.SeasonRainy)
	require.NoError(t, err)

	for _, method := range allMethods {
		t.Run(string(method), func(t *testing.T) {
			multiplier, err := table.MethodMultiplier(method)
			require.NoError(t, err)

			scaled := rec
			scaled.FarmingMethod = method
			got, err := Calculate(table, scaled, farm.SeasonRainy)
			require.NoError(t, err)

			assert.Equal(t, conventional.Fertilizer*multiplier, got.Fertilizer)
			assert.Equal(t, conventional.Livestock*multiplier, got.Livestock)
			assert.Equal(t, conventional.Fuel*multiplier, got.Fuel)
		})
	}
}

func TestCalculate_SubstituteTable(t *testing.T) {
	spec := factors.Default().Spec()
	spec.FuelConstant = 3.0
	spec.Version = "2.1.0"
	table, err := factors.New(spec)
	require.NoError(t, err)

	got, err := Fuel(table, 10, farm.MethodConventional, farm.SeasonDry)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got, 1e-9)
}
