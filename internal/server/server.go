// Package server exposes report generation and history over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/store"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Carbon Modelling API v2.0 - Cameroon"

// TraceHeader carries the request trace ID in both directions.
const TraceHeader = "X-Trace-ID"

// ResponsePrecision is the number of decimal places reports are rounded to
// in responses.
const ResponsePrecision = 2

// ReportStore is the history backend used by the server.
type ReportStore interface {
	Save(ctx context.Context, r report.Report) (string, error)
	Get(ctx context.Context, id string) (store.Entry, error)
	Recent(ctx context.Context, limit int) ([]store.Entry, error)
	Statistics(ctx context.Context) (store.Statistics, error)
	Ping(ctx context.Context) error
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables report persistence and the history endpoints.
func WithStore(st ReportStore) Option {
	return func(s *Server) { s.store = st }
}

// WithLogger sets the base request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = logging.ComponentLogger(l, "server") }
}

// Server is the HTTP API.
type Server struct {
	echo      *echo.Echo
	assembler *report.Assembler
	store     ReportStore
	metrics   *metrics
	logger    zerolog.Logger
	cfg       config.ServerConfig
}

// New builds a server around an assembler. Without WithStore reports are not
// persisted and the history endpoints answer 503.
func New(asm *report.Assembler, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		assembler: asm,
		metrics:   newMetrics(),
		logger:    logging.ComponentLogger(logging.Default(), "server"),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(middleware.Recover())
	e.Use(s.trace)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogError:      true,
		LogValuesFunc: logRequest,
	}))
	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api/v1")
	api.POST("/emissions", s.createEmissions)
	api.GET("/options", s.options)
	api.GET("/health", s.health)
	api.GET("/reports", s.listReports)
	api.GET("/reports/:id", s.getReport)
	api.GET("/statistics", s.statistics)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.handler()))
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Addr returns the listening address once Run has started, or nil.
func (s *Server) Addr() net.Addr { return s.echo.ListenerAddr() }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("operation", "serve").Str("address", s.cfg.Address).Msg("listening")
		errCh <- s.echo.Start(s.cfg.Address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Str("operation", "shutdown").Dur("timeout", timeout).Msg("shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// trace attaches a trace ID and the request logger to the request context.
func (s *Server) trace(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		id := req.Header.Get(TraceHeader)
		if id == "" {
			id = logging.NewTraceID()
		}
		ctx := logging.ContextWithTraceID(req.Context(), id)
		ctx = s.logger.WithContext(ctx)
		c.SetRequest(req.WithContext(ctx))
		c.Response().Header().Set(TraceHeader, id)
		return next(c)
	}
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	log := logging.FromContext(c.Request().Context())
	ev := log.Info()
	if v.Status >= http.StatusInternalServerError {
		ev = log.Error().Err(v.Error)
	}
	ev.Str("operation", "request").
		Str("method", v.Method).
		Str("uri", v.URI).
		Int("status", v.Status).
		Dur("latency", v.Latency).
		Msg("request handled")
	return nil
}
