// Package config loads farmcarbon settings from $FARMCARBON_HOME/config.yaml,
// an optional .env file and FARMCARBON_* environment variables, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/ecosystemplus/farmcarbon/internal/factors"
)

// Validation errors.
var (
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidPrecision  = errors.New("invalid output precision")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrInvalidConstraint = errors.New("invalid factor version constraint")
	ErrInvalidStore      = errors.New("invalid store configuration")
	ErrInvalidServer     = errors.New("invalid server configuration")
)

// Defaults.
const (
	DefaultOutputFormat    = "table"
	DefaultPrecision       = 2
	MaxPrecision           = 6
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultServerAddress   = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	configFileName         = "config.yaml"
	storeFileName          = "reports.db"
)

// SupportedOutputFormats lists the values accepted for output.default_format.
func SupportedOutputFormats() []string {
	return []string{"table", "json", "ndjson"}
}

// Config is the complete farmcarbon configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Factors FactorsConfig `yaml:"factors"`
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`

	configPath string
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the CLI and server logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// FactorsConfig selects the emission factor table.
type FactorsConfig struct {
	// File is a YAML factor table; empty means the built-in table.
	File string `yaml:"file,omitempty"`
	// MinVersion is a semver constraint the table version must satisfy.
	MinVersion string `yaml:"min_version,omitempty"`
}

// StoreConfig controls report persistence.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration rooted at the config directory.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = "."
	}
	return &Config{
		Output:  OutputConfig{DefaultFormat: DefaultOutputFormat, Precision: DefaultPrecision},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Store:   StoreConfig{Enabled: false, Path: filepath.Join(dir, storeFileName)},
		Server: ServerConfig{
			Address:         DefaultServerAddress,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// New returns the configuration from the default locations. Load failures
// are logged and the defaults, with environment overrides, are used instead.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		log.Warn().Err(err).Str("component", "config").Msg("using default configuration")
		cfg = Default()
		cfg.ApplyEnvOverrides()
	}
	return cfg
}

// Load reads the configuration file at path (the default path when empty),
// then .env files and environment overrides, and validates the result.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		cfg.configPath = path
	}

	if _, err := os.Stat(cfg.configPath); err == nil {
		if err := ShallowMergeYAML(cfg, cfg.configPath); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
	}

	if err := LoadDotEnv(".env", filepath.Join(filepath.Dir(cfg.configPath), ".env")); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the file the configuration is read from and saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the configuration as YAML to its config path.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(SupportedOutputFormats(), c.Output.DefaultFormat) {
		return fmt.Errorf("%w: %q (supported: %v)", ErrInvalidFormat, c.Output.DefaultFormat, SupportedOutputFormats())
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidPrecision, c.Output.Precision, MaxPrecision)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("%w: %q (supported: json, console)", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Factors.MinVersion != "" {
		if _, err := semver.NewConstraint(c.Factors.MinVersion); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidConstraint, c.Factors.MinVersion, err)
		}
	}
	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("%w: path is required when the store is enabled", ErrInvalidStore)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServer)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServer)
	}
	return nil
}

// LoadFactors returns the configured factor table, checked against
// factors.min_version.
func (c *Config) LoadFactors() (*factors.Table, error) {
	table := factors.Default()
	if c.Factors.File != "" {
		loaded, err := factors.LoadFile(c.Factors.File)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	if c.Factors.MinVersion != "" {
		if err := table.CheckVersion(c.Factors.MinVersion); err != nil {
			return nil, err
		}
	}
	return table, nil
}
