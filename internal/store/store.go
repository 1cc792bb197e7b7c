// Package store persists generated reports in SQLite and answers the history
// and statistics queries of the CLI and HTTP API.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// DefaultRecentLimit is the number of reports Recent returns when no
// positive limit is given.
const DefaultRecentLimit = 10

// ErrNotFound is returned when no report has the requested ID.
var ErrNotFound = errors.New("report not found")

// reportRow is the emission_reports table. The headline figures are kept in
// columns for querying; the full report is stored as JSON.
type reportRow struct {
	ID                  string        `gorm:"primaryKey;size:26"`
	AreaHectares        float64       `gorm:"not null"`
	FarmingMethod       string        `gorm:"index;not null"`
	Season              string        `gorm:"not null"`
	FertilizerLevel     string        `gorm:"not null"`
	FertilizerEmissions float64       `gorm:"not null"`
	LivestockEmissions  float64       `gorm:"not null"`
	FuelEmissions       float64       `gorm:"not null"`
	TotalEmissions      float64       `gorm:"not null"`
	EmissionsPerHectare float64       `gorm:"not null"`
	CarbonIntensity     string        `gorm:"not null"`
	FactorVersion       string        `gorm:"not null"`
	FullReport          report.Report `gorm:"serializer:json"`
	GeneratedAt         time.Time     `gorm:"index"`
	CreatedAt           time.Time
}

func (reportRow) TableName() string { return "emission_reports" }

// Entry is a stored report and its ID.
type Entry struct {
	ID     string        `json:"id"`
	Report report.Report `json:"report"`
}

// Summary is the one-line history view of an entry.
type Summary struct {
	ID                  string           `json:"id"`
	TotalEmissions      float64          `json:"total_emissions"`
	FarmArea            float64          `json:"farm_area"`
	FarmingMethod       string           `json:"farming_method"`
	Season              string           `json:"season"`
	EmissionsPerHectare float64          `json:"emissions_per_hectare"`
	CarbonIntensity     report.Intensity `json:"carbon_intensity"`
	GeneratedAt         time.Time        `json:"generated_at"`
}

// Summary returns the history view of e.
func (e Entry) Summary() Summary {
	r := e.Report
	return Summary{
		ID:                  e.ID,
		TotalEmissions:      r.Emissions.Total,
		FarmArea:            r.Farm.AreaHectares,
		FarmingMethod:       string(r.Farm.FarmingMethod),
		Season:              string(r.Metadata.Season),
		EmissionsPerHectare: r.Metrics.EmissionsPerHectare,
		CarbonIntensity:     r.Metrics.CarbonIntensity,
		GeneratedAt:         r.Metadata.GeneratedAt,
	}
}

// Sortable columns of a Query.
const (
	SortGeneratedAt = "generated_at"
	SortTotal       = "total_emissions"
	SortPerHectare  = "emissions_per_hectare"
	SortArea        = "area_hectares"
)

// Query selects a page of stored reports. Empty filter fields match every
// report. An empty Sort orders by generation time.
type Query struct {
	Limit           int
	Offset          int
	FarmingMethod   string
	Season          string
	CarbonIntensity string
	Sort            string
	Descending      bool
}

// Statistics aggregates every stored report.
type Statistics struct {
	TotalReports           int64            `json:"total_reports"`
	AvgEmissions           float64          `json:"avg_emissions"`
	MaxEmissions           float64          `json:"max_emissions"`
	MinEmissions           float64          `json:"min_emissions"`
	AvgEmissionsPerHectare float64          `json:"avg_emissions_per_hectare"`
	FarmingMethodBreakdown map[string]int64 `json:"farming_method_distribution"`
	IntensityDistribution  map[string]int64 `json:"carbon_intensity_distribution"`
}

// Store is a SQLite-backed report store. It is safe for concurrent use.
type Store struct {
	db   *gorm.DB
	path string
}

// Open opens (creating if needed) the store at path and migrates its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "store").
		Str("operation", "Open").
		Logger()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&reportRow{}); err != nil {
		return nil, fmt.Errorf("migrating store %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Msg("report store opened")
	return &Store{db: db, path: path}, nil
}

// Path returns the database file of the store.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Save stores r and returns its new ID. IDs sort by generation time.
func (s *Store) Save(ctx context.Context, r report.Report) (string, error) {
	generated := r.Metadata.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	id := ulid.MustNew(ulid.Timestamp(generated), ulid.DefaultEntropy()).String()

	row := reportRow{
		ID:                  id,
		AreaHectares:        r.Farm.AreaHectares,
		FarmingMethod:       string(r.Farm.FarmingMethod),
		Season:              string(r.Metadata.Season),
		FertilizerLevel:     string(r.Farm.FertilizerLevel),
		FertilizerEmissions: r.Emissions.Fertilizer,
		LivestockEmissions:  r.Emissions.Livestock,
		FuelEmissions:       r.Emissions.Fuel,
		TotalEmissions:      r.Emissions.Total,
		EmissionsPerHectare: r.Metrics.EmissionsPerHectare,
		CarbonIntensity:     string(r.Metrics.CarbonIntensity),
		FactorVersion:       r.Metadata.FactorVersion,
		FullReport:          r.Clone(),
		GeneratedAt:         generated,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}

	log := logging.FromContext(ctx)
	log.Info().
		Str("component", "store").
		Str("operation", "Save").
		Str("report_id", id).
		Float64("total_emissions", r.Emissions.Total).
		Msg("report saved")
	return id, nil
}

// Get returns the report with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var row reportRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("loading report %s: %w", id, err)
	}
	return Entry{ID: row.ID, Report: row.FullReport}, nil
}

// Recent returns up to limit reports, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var rows []reportRow
	if err := s.db.WithContext(ctx).
		Order("generated_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{ID: row.ID, Report: row.FullReport})
	}
	return entries, nil
}

// Statistics aggregates every stored report. The average per hectare is the
// average total divided by the average area.
func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	var agg struct {
		TotalReports int64
		AvgEmissions float64
		MaxEmissions float64
		MinEmissions float64
		AvgArea      float64
	}
	db := s.db.WithContext(ctx).Model(&reportRow{})
	if err := db.Select(
		"COUNT(*) AS total_reports, " +
			"COALESCE(AVG(total_emissions), 0) AS avg_emissions, " +
			"COALESCE(MAX(total_emissions), 0) AS max_emissions, " +
			"COALESCE(MIN(total_emissions), 0) AS min_emissions, " +
			"COALESCE(AVG(area_hectares), 0) AS avg_area",
	).Scan(&agg).Error; err != nil {
		return Statistics{}, fmt.Errorf("aggregating reports: %w", err)
	}

	stats := Statistics{
		TotalReports:           agg.TotalReports,
		AvgEmissions:           agg.AvgEmissions,
		MaxEmissions:           agg.MaxEmissions,
		MinEmissions:           agg.MinEmissions,
		FarmingMethodBreakdown: map[string]int64{},
		IntensityDistribution:  map[string]int64{},
	}
	if agg.TotalReports > 0 && agg.AvgArea > 0 {
		stats.AvgEmissionsPerHectare = agg.AvgEmissions / agg.AvgArea
	}

	if err := s.countBy(ctx, "farming_method", stats.FarmingMethodBreakdown); err != nil {
		return Statistics{}, err
	}
	if err := s.countBy(ctx, "carbon_intensity", stats.IntensityDistribution); err != nil {
		return Statistics{}, err
	}
	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column string, into map[string]int64) error {
	var groups []struct {
		GroupKey string
		Count    int64
	}
	if err := s.db.WithContext(ctx).Model(&reportRow{}).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column).
		Scan(&groups).Error; err != nil {
		return fmt.Errorf("counting reports by %s: %w", column, err)
	}
	for _, g := range groups {
		into[g.GroupKey] = g.Count
	}
	return nil
}

// List returns the reports matching q and the number of matching reports
// before paging.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, int64, error) {
	sortColumn := q.Sort
	switch sortColumn {
	case "":
		sortColumn = SortGeneratedAt
	case SortGeneratedAt, SortTotal, SortPerHectare, SortArea:
	default:
		return nil, 0, fmt.Errorf("unsupported sort column %q", q.Sort)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultRecentLimit
	}

	tx := s.db.WithContext(ctx).Model(&reportRow{})
	if q.FarmingMethod != "" {
		tx = tx.Where("farming_method = ?", q.FarmingMethod)
	}
	if q.Season != "" {
		tx = tx.Where("season = ?", q.Season)
	}
	if q.CarbonIntensity != "" {
		tx = tx.Where("carbon_intensity = ?", q.CarbonIntensity)
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting reports: %w", err)
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	var rows []reportRow
	if err := tx.
		Order(sortColumn + " " + direction + ", id " + direction).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("listing reports: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{ID: row.ID, Report: row.FullReport})
	}
	return entries, total, nil
}
