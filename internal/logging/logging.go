// Package logging builds the zerolog loggers used by the CLI, the HTTP server
// and the report store, and carries them through contexts together with a
// per-invocation trace ID.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Output destinations.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level  string
	Format string
	Output string
	File   string
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is set when log lines go to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is set when file output was requested but could not be
	// opened; FallbackReason says why.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLoggerWithPath builds a logger for cfg, writing to stderr unless cfg
// asks for a file. A file that cannot be opened falls back to stderr.
func NewLoggerWithPath(cfg Config) LogPathResult {
	return newLoggerWithPath(cfg, os.Stderr)
}

func newLoggerWithPath(cfg Config, stderr io.Writer) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: NewLogger(cfg, stderr)}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg, stderr),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg, stderr),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}
	return LogPathResult{
		Logger:    NewLogger(cfg, f),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      f,
	}
}

// NewLogger returns a logger writing to w according to cfg.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	out := w
	if strings.EqualFold(cfg.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns l tagged with the component field.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

//nolint:gochecknoglobals // Process-wide fallback for contexts without a logger.
var (
	defaultMu     sync.RWMutex
	defaultLogger = zerolog.Nop()
)

// SetDefault sets the logger FromContext returns for contexts that carry
// none.
func SetDefault(l zerolog.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the process-wide fallback logger.
func Default() zerolog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// FromContext returns the logger stored in ctx, or the default logger, with
// the trace ID of ctx attached when there is one.
func FromContext(ctx context.Context) zerolog.Logger {
	l := Default()
	if ctx != nil {
		if stored := zerolog.Ctx(ctx); stored != nil && stored.GetLevel() != zerolog.Disabled {
			l = *stored
		}
	}
	if id := TraceIDFromContext(ctx); id != "" {
		l = l.With().Str("trace_id", id).Logger()
	}
	return l
}

// PrintLogPathMessage tells the user where log lines are written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning reports that file logging was unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}
