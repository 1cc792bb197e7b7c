package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/store"
)

const reportCreatedMessage = "Emission report calculated successfully"

// healthTimeout bounds the store ping in the health check.
const healthTimeout = 800 * time.Millisecond

type emissionsRequest struct {
	farm.Record
	Month *int `json:"month,omitempty"`
}

type emissionsResponse struct {
	Success bool          `json:"success"`
	ID      string        `json:"id,omitempty"`
	Report  report.Report `json:"report"`
	Message string        `json:"message"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Field    string   `json:"field,omitempty"`
	Accepted []string `json:"accepted,omitempty"`
}

type reportsResponse struct {
	Count   int             `json:"count"`
	Reports []store.Summary `json:"reports"`
}

type healthResponse struct {
	Status        string      `json:"status"`
	Service       string      `json:"service"`
	CurrentSeason farm.Season `json:"current_season"`
	Methodology   string      `json:"methodology"`
	FactorVersion string      `json:"factor_version"`
	Store         storeHealth `json:"store"`
}

type storeHealth struct {
	Enabled bool   `json:"enabled"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

var errHistoryDisabled = errors.New("report history is disabled")

func (s *Server) createEmissions(c echo.Context) error {
	ctx := c.Request().Context()
	var req emissionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	var (
		r   report.Report
		err error
	)
	switch {
	case req.Season != "":
		r, err = s.assembler.Generate(req.Record)
	case req.Month != nil:
		r, err = s.assembler.GenerateForMonth(req.Record, *req.Month)
	default:
		r, err = s.assembler.GenerateCurrent(req.Record)
	}
	if err != nil {
		return s.fail(c, err)
	}
	s.metrics.reports.WithLabelValues(string(r.Metrics.CarbonIntensity)).Inc()

	resp := emissionsResponse{
		Success: true,
		Report:  r.Rounded(ResponsePrecision),
		Message: reportCreatedMessage,
	}
	if s.store != nil {
		id, err := s.store.Save(ctx, r)
		if err != nil {
			log := logging.FromContext(ctx)
			log.Warn().Err(err).Str("operation", "save_report").Msg("report not saved")
		} else {
			resp.ID = id
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) options(c echo.Context) error {
	return c.JSON(http.StatusOK, s.assembler.Options())
}

func (s *Server) health(c echo.Context) error {
	table := s.assembler.Table()
	resp := healthResponse{
		Status:        "healthy",
		Service:       ServiceName,
		CurrentSeason: s.assembler.CurrentSeason(),
		Methodology:   table.Methodology(),
		FactorVersion: table.Version(),
	}
	status := http.StatusOK
	if s.store != nil {
		resp.Store.Enabled = true
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Store.Error = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			resp.Store.OK = true
		}
	}
	return c.JSON(status, resp)
}

func (s *Server) listReports(c echo.Context) error {
	if s.store == nil {
		return s.fail(c, errHistoryDisabled)
	}
	limit := store.DefaultRecentLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "limit must be a positive integer",
				Field: "limit",
			})
		}
		limit = n
	}

	entries, err := s.store.Recent(c.Request().Context(), limit)
	if err != nil {
		return s.fail(c, err)
	}
	resp := reportsResponse{Count: len(entries), Reports: make([]store.Summary, 0, len(entries))}
	for _, e := range entries {
		e.Report = e.Report.Rounded(ResponsePrecision)
		resp.Reports = append(resp.Reports, e.Summary())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getReport(c echo.Context) error {
	if s.store == nil {
		return s.fail(c, errHistoryDisabled)
	}
	entry, err := s.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	entry.Report = entry.Report.Rounded(ResponsePrecision)
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) statistics(c echo.Context) error {
	if s.store == nil {
		return s.fail(c, errHistoryDisabled)
	}
	stats, err := s.store.Statistics(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	stats.AvgEmissions = report.Round(stats.AvgEmissions, ResponsePrecision)
	stats.MaxEmissions = report.Round(stats.MaxEmissions, ResponsePrecision)
	stats.MinEmissions = report.Round(stats.MinEmissions, ResponsePrecision)
	stats.AvgEmissionsPerHectare = report.Round(stats.AvgEmissionsPerHectare, ResponsePrecision)
	return c.JSON(http.StatusOK, stats)
}

// fail maps err onto a status code and error body.
func (s *Server) fail(c echo.Context, err error) error {
	var invalid *farm.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		s.metrics.invalid.WithLabelValues(invalid.Field).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:    invalid.Error(),
			Field:    invalid.Field,
			Accepted: invalid.Accepted,
		})
	case errors.Is(err, farm.ErrInvalidInput):
		s.metrics.invalid.WithLabelValues("").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, errHistoryDisabled):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		log := logging.FromContext(c.Request().Context())
		log.Error().Err(err).Str("operation", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
