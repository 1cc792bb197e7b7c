package report

import (
	"errors"
	"time"

	"github.com/ecosystemplus/farmcarbon/internal/calculator"
	"github.com/ecosystemplus/farmcarbon/internal/factors"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/recommend"
	"github.com/ecosystemplus/farmcarbon/internal/season"
)

// ErrNilTable is returned by New when no factor table is supplied.
var ErrNilTable = errors.New("report: factor table is required")

// Option configures an Assembler.
type Option func(*Assembler)

// WithCatalog replaces the default recommendation catalog.
func WithCatalog(c *recommend.Catalog) Option {
	return func(a *Assembler) {
		if c != nil {
			a.catalog = c
		}
	}
}

// WithClock sets the clock used for report timestamps and for the current
// month in GenerateCurrent.
func WithClock(clock season.Clock) Option {
	return func(a *Assembler) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// Assembler builds reports from farm records.
type Assembler struct {
	table   *factors.Table
	catalog *recommend.Catalog
	clock   season.Clock
}

// New returns an Assembler that computes reports with table.
func New(table *factors.Table, opts ...Option) (*Assembler, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	a := &Assembler{
		table:   table,
		catalog: recommend.DefaultCatalog(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Table returns the factor table the assembler computes with.
func (a *Assembler) Table() *factors.Table { return a.table }

// Catalog returns the recommendation catalog.
func (a *Assembler) Catalog() *recommend.Catalog { return a.catalog }

// CurrentSeason returns the season of the assembler's clock.
func (a *Assembler) CurrentSeason() farm.Season { return season.Current(a.clock) }

// Generate builds a report using the season set on rec.
func (a *Assembler) Generate(rec farm.Record) (Report, error) {
	return a.assemble(rec, rec.Season, Metadata{SeasonSource: SeasonSourceExplicit})
}

// GenerateForMonth builds a report for the season month falls in. The
// season on rec is ignored and the snapshot in the report carries the
// detected season.
func (a *Assembler) GenerateForMonth(rec farm.Record, month int) (Report, error) {
	s, err := season.FromMonth(month)
	if err != nil {
		return Report{}, err
	}
	return a.assemble(rec, s, Metadata{SeasonSource: SeasonSourceMonth, Month: month})
}

// GenerateCurrent builds a report for the month reported by the assembler's
// clock.
func (a *Assembler) GenerateCurrent(rec farm.Record) (Report, error) {
	return a.GenerateForMonth(rec, int(a.clock().Month()))
}

// Options returns the form options for the assembler's table and catalog.
func (a *Assembler) Options() Options {
	return FormOptions(a.table, a.catalog, a.CurrentSeason())
}

func (a *Assembler) assemble(rec farm.Record, s farm.Season, meta Metadata) (Report, error) {
	if err := rec.Validate(); err != nil {
		return Report{}, err
	}
	breakdown, err := calculator.Calculate(a.table, rec, s)
	if err != nil {
		return Report{}, err
	}

	snapshot := rec.Clone()
	snapshot.Season = s

	meta.Season = s
	meta.Methodology = a.table.Methodology()
	meta.FactorVersion = a.table.Version()
	meta.GeneratedAt = a.clock().UTC()

	return Report{
		Farm:      snapshot,
		Emissions: breakdown,
		Metrics: Metrics{
			EmissionsPerHectare: PerHectare(breakdown.Total, rec.AreaHectares),
			CarbonIntensity:     ClassifyIntensity(breakdown.Total, rec.AreaHectares),
		},
		Recommendations: recommend.Recommend(a.catalog, breakdown, rec.FarmingMethod),
		Metadata:        meta,
	}, nil
}
