package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvHome               = "FARMCARBON_HOME"
	EnvLogLevel           = "FARMCARBON_LOG_LEVEL"
	EnvLogFormat          = "FARMCARBON_LOG_FORMAT"
	EnvLogFile            = "FARMCARBON_LOG_FILE"
	EnvOutputFormat       = "FARMCARBON_OUTPUT_FORMAT"
	EnvFactorsFile        = "FARMCARBON_FACTORS_FILE"
	EnvFactorsMinVersion  = "FARMCARBON_FACTORS_MIN_VERSION"
	EnvStorePath          = "FARMCARBON_STORE_PATH"
	EnvStoreEnabled       = "FARMCARBON_STORE_ENABLED"
	EnvServerAddr         = "FARMCARBON_SERVER_ADDR"
	EnvServerWriteTimeout = "FARMCARBON_SERVER_WRITE_TIMEOUT"
)

// LoadDotEnv loads variables from the given .env files. Missing files are
// skipped and variables already set in the environment are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnvOverrides overlays FARMCARBON_* environment variables on c.
// Unparseable boolean and duration values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvFactorsFile); v != "" {
		c.Factors.File = v
	}
	if v := os.Getenv(EnvFactorsMinVersion); v != "" {
		c.Factors.MinVersion = v
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvStoreEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Store.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvServerWriteTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.WriteTimeout = d
		}
	}
}
