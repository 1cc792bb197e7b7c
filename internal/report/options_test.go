package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/recommend"
)

func TestFormOptions(t *testing.T) {
	opts := FormOptions(factors.Default(), recommend.DefaultCatalog(), farm.SeasonRainy)

	require.Len(t, opts.FarmingMethods, 5)
	assert.Equal(t, MethodOption{
		Value:       "agroforestry",
		Label:       "Agroforestry",
		Description: "You grow trees or use alley cropping",
		Multiplier:  0.8,
	}, opts.FarmingMethods[0])

	var levels []string
	for _, l := range opts.FertilizerLevels {
		levels = append(levels, l.Label)
	}
	assert.Equal(t, []string{"None", "Low", "Medium", "High"}, levels)
	assert.Equal(t, 66.0, opts.FertilizerLevels[2].BasePerHectare)

	assert.Equal(t, []string{"cattle", "goat", "pigs", "poultry", "rams", "sheep"}, opts.LivestockTypes)
	assert.Equal(t, []string{"dry", "rainy"}, opts.Seasons)
	assert.Equal(t, farm.SeasonRainy, opts.CurrentSeason)
	assert.Len(t, opts.Tips, 4)
	assert.Len(t, opts.Tips["general"], 5)
}

func TestAssembler_Options(t *testing.T) {
	a := newAssembler(t)
	opts := a.Options()
	assert.Equal(t, farm.SeasonDry, opts.CurrentSeason)
	assert.Len(t, opts.FarmingMethods, 5)
}
