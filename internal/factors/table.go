// Package factors holds the emission factor table used by the calculator.
//
// A Table is immutable once built. The built-in values come from Default;
// revised factor sets are loaded from YAML with Parse or LoadFile so that
// factor changes never touch calculation code.
package factors

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// Table validation errors.
var (
	ErrInvalidTable    = errors.New("invalid emission factor table")
	ErrVersionMismatch = errors.New("emission factor table version not accepted")
)

// SeasonFactors is the per-source multiplier triplet for one season.
type SeasonFactors struct {
	Fertilizer float64 `yaml:"fertilizer" json:"fertilizer"`
	Livestock  float64 `yaml:"livestock"  json:"livestock"`
	Fuel       float64 `yaml:"fuel"       json:"fuel"`
}

// Spec is the serialisable description of a factor table.
type Spec struct {
	Version            string                           `yaml:"version"                     json:"version"`
	Methodology        string                           `yaml:"methodology"                 json:"methodology"`
	FertilizerBase     map[farm.FertilizerLevel]float64 `yaml:"fertilizer_base_per_hectare" json:"fertilizer_base_per_hectare"`
	FertilizerConstant float64                          `yaml:"fertilizer_constant"         json:"fertilizer_constant"`
	Livestock          map[string]float64               `yaml:"livestock_monthly"           json:"livestock_monthly"`
	FuelConstant       float64                          `yaml:"fuel_constant"               json:"fuel_constant"`
	Methods            map[farm.FarmingMethod]float64   `yaml:"method_multipliers"          json:"method_multipliers"`
	Seasons            map[farm.Season]SeasonFactors    `yaml:"seasons"                     json:"seasons"`
}

// Table is a validated, read-only set of emission factors.
type Table struct {
	version            *semver.Version
	methodology        string
	fertilizerBase     map[farm.FertilizerLevel]float64
	fertilizerConstant float64
	livestock          map[string]float64
	fuelConstant       float64
	methods            map[farm.FarmingMethod]float64
	seasons            map[farm.Season]SeasonFactors
}

// Default returns the built-in factor table.
func Default() *Table {
	t, err := New(defaultSpec())
	if err != nil {
		panic(fmt.Sprintf("built-in factor table is invalid: %v", err))
	}
	return t
}

// New validates spec and builds a Table from a private copy of it.
func New(spec Spec) (*Table, error) {
	v, err := semver.NewVersion(spec.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %w", ErrInvalidTable, spec.Version, err)
	}
	if spec.Methodology == "" {
		return nil, fmt.Errorf("%w: methodology is required", ErrInvalidTable)
	}
	if err = checkFactor("fertilizer_constant", spec.FertilizerConstant); err != nil {
		return nil, err
	}
	if err = checkFactor("fuel_constant", spec.FuelConstant); err != nil {
		return nil, err
	}
	if err = checkSection("fertilizer_base_per_hectare", spec.FertilizerBase); err != nil {
		return nil, err
	}
	if err = checkSection("livestock_monthly", spec.Livestock); err != nil {
		return nil, err
	}
	if err = checkSection("method_multipliers", spec.Methods); err != nil {
		return nil, err
	}
	for _, s := range []farm.Season{farm.SeasonDry, farm.SeasonRainy} {
		f, ok := spec.Seasons[s]
		if !ok {
			return nil, fmt.Errorf("%w: seasons: missing %q", ErrInvalidTable, s)
		}
		for name, val := range map[string]float64{"fertilizer": f.Fertilizer, "livestock": f.Livestock, "fuel": f.Fuel} {
			if err = checkFactor(fmt.Sprintf("seasons.%s.%s", s, name), val); err != nil {
				return nil, err
			}
		}
	}

	return &Table{
		version:            v,
		methodology:        spec.Methodology,
		fertilizerBase:     maps.Clone(spec.FertilizerBase),
		fertilizerConstant: spec.FertilizerConstant,
		livestock:          maps.Clone(spec.Livestock),
		fuelConstant:       spec.FuelConstant,
		methods:            maps.Clone(spec.Methods),
		seasons:            maps.Clone(spec.Seasons),
	}, nil
}

func checkFactor(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a finite non-negative number, got %g", ErrInvalidTable, name, v)
	}
	return nil
}

func checkSection[K ~string](name string, section map[K]float64) error {
	if len(section) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidTable, name)
	}
	for k, v := range section {
		if k == "" {
			return fmt.Errorf("%w: %s contains an empty key", ErrInvalidTable, name)
		}
		if err := checkFactor(name+"."+string(k), v); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the table version string.
func (t *Table) Version() string { return t.version.String() }

// Methodology returns the methodology tag recorded on reports.
func (t *Table) Methodology() string { return t.methodology }

// FertilizerConstant returns kg CO2e per unit of fertilizer.
func (t *Table) FertilizerConstant() float64 { return t.fertilizerConstant }

// FuelConstant returns kg CO2e per liter of fuel.
func (t *Table) FuelConstant() float64 { return t.fuelConstant }

// CheckVersion reports whether the table version satisfies a semver
// constraint such as ">= 2.0.0". An empty constraint accepts any version.
func (t *Table) CheckVersion(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	if !c.Check(t.version) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrVersionMismatch, t.version, constraint)
	}
	return nil
}

// FertilizerBase returns the base fertilizer amount per hectare for level.
func (t *Table) FertilizerBase(level farm.FertilizerLevel) (float64, error) {
	v, ok := t.fertilizerBase[level]
	if !ok {
		return 0, farm.NewInvalidChoice(farm.FieldFertilizerLevel, string(level), t.FertilizerLevels())
	}
	return v, nil
}

// MethodMultiplier returns the emission multiplier for method.
func (t *Table) MethodMultiplier(method farm.FarmingMethod) (float64, error) {
	v, ok := t.methods[method]
	if !ok {
		return 0, farm.NewInvalidChoice(farm.FieldFarmingMethod, string(method), t.Methods())
	}
	return v, nil
}

// SeasonFactors returns the seasonal multipliers for season.
func (t *Table) SeasonFactors(season farm.Season) (SeasonFactors, error) {
	v, ok := t.seasons[season]
	if !ok {
		return SeasonFactors{}, farm.NewInvalidChoice(farm.FieldSeason, string(season), t.Seasons())
	}
	return v, nil
}

// AnimalFactor returns the monthly kg CO2e per animal of the given type.
func (t *Table) AnimalFactor(animal string) (float64, error) {
	v, ok := t.livestock[animal]
	if !ok {
		err := farm.NewInvalidChoice(farm.FieldLivestock, animal, t.AnimalTypes())
		err.Reason = fmt.Sprintf("unknown animal type %q", animal)
		return 0, err
	}
	return v, nil
}

// FertilizerLevels returns the recognized levels ordered by base amount.
func (t *Table) FertilizerLevels() []string {
	levels := make([]string, 0, len(t.fertilizerBase))
	for k := range t.fertilizerBase {
		levels = append(levels, string(k))
	}
	sort.Slice(levels, func(i, j int) bool {
		a, b := t.fertilizerBase[farm.FertilizerLevel(levels[i])], t.fertilizerBase[farm.FertilizerLevel(levels[j])]
		if a != b {
			return a < b
		}
		return levels[i] < levels[j]
	})
	return levels
}

// Methods returns the recognized farming methods in alphabetical order.
func (t *Table) Methods() []string { return sortedKeys(t.methods) }

// Seasons returns the recognized seasons in alphabetical order.
func (t *Table) Seasons() []string { return sortedKeys(t.seasons) }

// AnimalTypes returns the recognized livestock types in alphabetical order.
func (t *Table) AnimalTypes() []string { return sortedKeys(t.livestock) }

// Spec returns a copy of the table as a serialisable description.
func (t *Table) Spec() Spec {
	return Spec{
		Version:            t.version.Original(),
		Methodology:        t.methodology,
		FertilizerBase:     maps.Clone(t.fertilizerBase),
		FertilizerConstant: t.fertilizerConstant,
		Livestock:          maps.Clone(t.livestock),
		FuelConstant:       t.fuelConstant,
		Methods:            maps.Clone(t.methods),
		Seasons:            maps.Clone(t.seasons),
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
