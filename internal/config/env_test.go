package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogFile, "/tmp/fc.log")
	t.Setenv(EnvOutputFormat, "ndjson")
	t.Setenv(EnvFactorsFile, "/etc/factors.yaml")
	t.Setenv(EnvFactorsMinVersion, ">= 2.0.0")
	t.Setenv(EnvStorePath, "/data/reports.db")
	t.Setenv(EnvStoreEnabled, "true")
	t.Setenv(EnvServerAddr, ":9999")
	t.Setenv(EnvServerWriteTimeout, "1m")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/fc.log", cfg.Logging.File)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, "/etc/factors.yaml", cfg.Factors.File)
	assert.Equal(t, ">= 2.0.0", cfg.Factors.MinVersion)
	assert.Equal(t, "/data/reports.db", cfg.Store.Path)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
}

func TestApplyEnvOverrides_IgnoresBadValues(t *testing.T) {
	t.Setenv(EnvStoreEnabled, "sometimes")
	t.Setenv(EnvServerWriteTimeout, "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.False(t, cfg.Store.Enabled)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "FARMCARBON_TEST_DOTENV_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadDotEnv("", filepath.Join(t.TempDir(), "absent.env"), path))
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadDotEnv_KeepsExisting(t *testing.T) {
	t.Setenv(EnvOutputFormat, "json")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvOutputFormat+"=ndjson\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "json", os.Getenv(EnvOutputFormat))
}

func TestLoad_DotEnvBesideConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvServerAddr, "")
	require.NoError(t, os.Unsetenv(EnvServerAddr))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte(EnvServerAddr+"=:7070\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
}
