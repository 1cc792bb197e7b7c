package report

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/recommend"
)

// MethodOption describes a selectable farming method.
type MethodOption struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
}

// LevelOption describes a selectable fertilizer level.
type LevelOption struct {
	Value          string  `json:"value"`
	Label          string  `json:"label"`
	BasePerHectare float64 `json:"base_per_hectare"`
}

// Options lists every choice an input form offers.
type Options struct {
	FarmingMethods   []MethodOption      `json:"farming_methods"`
	FertilizerLevels []LevelOption       `json:"fertilizer_levels"`
	LivestockTypes   []string            `json:"livestock_types"`
	Seasons          []string            `json:"seasons"`
	CurrentSeason    farm.Season         `json:"current_season"`
	Tips             map[string][]string `json:"tips"`
}

// FormOptions derives the option lists from table and catalog. Methods and
// livestock types follow the table's accepted order.
func FormOptions(table *factors.Table, catalog *recommend.Catalog, current farm.Season) Options {
	title := cases.Title(language.English)

	opts := Options{
		LivestockTypes: table.AnimalTypes(),
		Seasons:        table.Seasons(),
		CurrentSeason:  current,
		Tips:           catalog.AllTips(),
	}
	for _, m := range table.Methods() {
		method := farm.FarmingMethod(m)
		multiplier, _ := table.MethodMultiplier(method)
		opts.FarmingMethods = append(opts.FarmingMethods, MethodOption{
			Value:       m,
			Label:       title.String(m),
			Description: catalog.MethodDescription(method),
			Multiplier:  multiplier,
		})
	}
	for _, l := range table.FertilizerLevels() {
		base, _ := table.FertilizerBase(farm.FertilizerLevel(l))
		opts.FertilizerLevels = append(opts.FertilizerLevels, LevelOption{
			Value:          l,
			Label:          title.String(l),
			BasePerHectare: base,
		})
	}
	return opts
}
