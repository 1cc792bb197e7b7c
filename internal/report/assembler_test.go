package report

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosystemplus/farmcarbon/internal/calculator"
	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/recommend"
)

var fixedTime = time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newAssembler(t *testing.T) *Assembler {
	t.Helper()
	a, err := New(factors.Default(), WithClock(fixedClock))
	require.NoError(t, err)
	return a
}

func scenarioRecord() farm.Record {
	return farm.Record{
		AreaHectares:      10,
		Season:            farm.SeasonDry,
		FarmingMethod:     farm.MethodOrganic,
		FertilizerLevel:   farm.FertilizerMedium,
		Livestock:         map[string]int{"cattle": 5},
		MonthlyFuelLiters: 50,
	}
}

func TestNew_RequiresTable(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestGenerate_Scenario(t *testing.T) {
	a := newAssembler(t)

	got, err := a.Generate(scenarioRecord())
	require.NoError(t, err)

	catalog := recommend.DefaultCatalog()
	fert := catalog.Tips(recommend.CategoryFertilizer)
	live := catalog.Tips(recommend.CategoryLivestock)
	gen := catalog.Tips(recommend.CategoryGeneral)

	want := Report{
		Farm:      scenarioRecord(),
		Emissions: calculator.Breakdown{Fertilizer: 720.72, Livestock: 705.83, Fuel: 93.8, Total: 1520.35},
		Metrics: Metrics{
			EmissionsPerHectare: 152.04,
			CarbonIntensity:     IntensityLow,
		},
		Recommendations: []string{fert[0], fert[1], live[0], live[1], gen[0], gen[1]},
		Metadata: Metadata{
			Season:        farm.SeasonDry,
			SeasonSource:  SeasonSourceExplicit,
			Methodology:   factors.DefaultMethodology,
			FactorVersion: factors.DefaultVersion,
			GeneratedAt:   fixedTime,
		},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got.Emissions.Fertilizer+got.Emissions.Livestock+got.Emissions.Fuel, got.Emissions.Total)
}

func TestGenerate_InvalidInput(t *testing.T) {
	a := newAssembler(t)

	tests := []struct {
		name  string
		edit  func(*farm.Record)
		field string
	}{
		{"missing season", func(r *farm.Record) { r.Season = "" }, farm.FieldSeason},
		{"unknown season", func(r *farm.Record) { r.Season = "monsoon" }, farm.FieldSeason},
		{"zero area", func(r *farm.Record) { r.AreaHectares = 0 }, farm.FieldAreaHectares},
		{"negative fuel", func(r *farm.Record) { r.MonthlyFuelLiters = -1 }, farm.FieldMonthlyFuelLiters},
		{"unknown method", func(r *farm.Record) { r.FarmingMethod = "hydroponic" }, farm.FieldFarmingMethod},
		{"unknown fertilizer", func(r *farm.Record) { r.FertilizerLevel = "extreme" }, farm.FieldFertilizerLevel},
		{"unknown animal", func(r *farm.Record) { r.Livestock = map[string]int{"dragon": 1} }, farm.FieldLivestock},
		{"negative count", func(r *farm.Record) { r.Livestock = map[string]int{"goat": -3} }, farm.FieldLivestock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := scenarioRecord()
			tt.edit(&rec)

			_, err := a.Generate(rec)
			require.ErrorIs(t, err, farm.ErrInvalidInput)
			var invalid *farm.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestGenerate_UnknownAnimalNamed(t *testing.T) {
	a := newAssembler(t)
	rec := scenarioRecord()
	rec.Livestock = map[string]int{"cattle": 1, "dragon": 2}

	_, err := a.Generate(rec)
	require.ErrorIs(t, err, farm.ErrInvalidInput)
	assert.Contains(t, err.Error(), "dragon")
}

func TestGenerateForMonth(t *testing.T) {
	a := newAssembler(t)
	rec := scenarioRecord()

	got, err := a.GenerateForMonth(rec, 7)
	require.NoError(t, err)

	assert.Equal(t, farm.SeasonRainy, got.Farm.Season)
	assert.Equal(t, farm.SeasonRainy, got.Metadata.Season)
	assert.Equal(t, SeasonSourceMonth, got.Metadata.SeasonSource)
	assert.Equal(t, 7, got.Metadata.Month)
	assert.Equal(t, farm.SeasonDry, rec.Season, "input record must not change")

	explicit := rec
	explicit.Season = farm.SeasonRainy
	want, err := a.Generate(explicit)
	require.NoError(t, err)
	assert.Equal(t, want.Emissions, got.Emissions)
}

func TestGenerateForMonth_InvalidMonth(t *testing.T) {
	a := newAssembler(t)

	for _, month := range []int{0, 13, -1} {
		_, err := a.GenerateForMonth(scenarioRecord(), month)
		var invalid *farm.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, farm.FieldMonth, invalid.Field)
	}
}

func TestGenerateCurrent_UsesClock(t *testing.T) {
	a := newAssembler(t)
	rec := scenarioRecord()
	rec.Season = ""

	got, err := a.GenerateCurrent(rec)
	require.NoError(t, err)
	assert.Equal(t, farm.SeasonDry, got.Metadata.Season)
	assert.Equal(t, 1, got.Metadata.Month)
	assert.Equal(t, farm.SeasonDry, a.CurrentSeason())
}

func TestGenerate_ZeroEmissions(t *testing.T) {
	a := newAssembler(t)
	rec := farm.Record{
		AreaHectares:    3,
		Season:          farm.SeasonRainy,
		FarmingMethod:   farm.MethodConventional,
		FertilizerLevel: farm.FertilizerNone,
	}

	got, err := a.Generate(rec)
	require.NoError(t, err)
	assert.Zero(t, got.Emissions.Total)
	assert.Equal(t, IntensityLow, got.Metrics.CarbonIntensity)
	assert.Equal(t, []string{"Continue your current sustainable practices!"}, got.Recommendations)
}

func TestGenerate_ReportOwnsItsData(t *testing.T) {
	a := newAssembler(t)
	rec := scenarioRecord()

	got, err := a.Generate(rec)
	require.NoError(t, err)

	got.Farm.Livestock["cattle"] = 100
	assert.Equal(t, 5, rec.Livestock["cattle"])

	rec.Livestock["goat"] = 4
	_, ok := got.Farm.Livestock["goat"]
	assert.False(t, ok)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := newAssembler(t)
	rec := scenarioRecord()
	rec.Livestock = map[string]int{"cattle": 3, "goat": 7, "poultry": 40, "pigs": 2, "sheep": 5, "rams": 1}

	first, err := a.Generate(rec)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Report, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Generate(rec)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, first, results[i])
	}
}

func TestReport_Rounded(t *testing.T) {
	a := newAssembler(t)
	got, err := a.Generate(scenarioRecord())
	require.NoError(t, err)

	r := got.Rounded(2)
	assert.Equal(t, 720.72, r.Emissions.Fertilizer)
	assert.Equal(t, 705.83, r.Emissions.Livestock)
	assert.Equal(t, 93.8, r.Emissions.Fuel)
	assert.Equal(t, 1520.35, r.Emissions.Total)
	assert.Equal(t, 152.04, r.Metrics.EmissionsPerHectare)

	assert.NotEqual(t, got.Emissions.Livestock, r.Emissions.Livestock, "original must keep full precision")
}

func TestWithCatalog(t *testing.T) {
	a, err := New(factors.Default(), WithCatalog(nil), WithClock(nil))
	require.NoError(t, err)
	assert.NotNil(t, a.Catalog())

	custom := recommend.DefaultCatalog()
	a, err = New(factors.Default(), WithCatalog(custom))
	require.NoError(t, err)
	assert.Same(t, custom, a.Catalog())
}
