package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosystemplus/farmcarbon/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		Output:  config.OutputConfig{DefaultFormat: "table", Precision: 2},
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
		Store:   config.StoreConfig{Enabled: false, Path: "/var/lib/farmcarbon/reports.db"},
		Server: config.ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_FieldOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
store:
  enabled: true
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, 2, target.Output.Precision, "absent field keeps its value")
	assert.True(t, target.Store.Enabled)
	assert.Equal(t, "/var/lib/farmcarbon/reports.db", target.Store.Path)
	assert.Equal(t, "info", target.Logging.Level, "absent section keeps its value")
}

func TestShallowMergeYAML_Durations(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
server:
  address: 127.0.0.1:9090
  shutdown_timeout: 30s
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "127.0.0.1:9090", target.Server.Address)
	assert.Equal(t, 30*time.Second, target.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, target.Server.ReadTimeout)
}

func TestShallowMergeYAML_Factors(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
factors:
  file: /etc/farmcarbon/factors.yaml
  min_version: ">= 2.0.0"
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "/etc/farmcarbon/factors.yaml", target.Factors.File)
	assert.Equal(t, ">= 2.0.0", target.Factors.MinVersion)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"unknown key", "plugins:\n  foo: bar\n", "unknown config key"},
		{"malformed yaml", "output: [unclosed\n", "parsing config YAML"},
		{"wrong type", "output:\n  precision: lots\n", "applying config section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := newDefaultTarget()
	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# nothing\n")))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_NilTarget(t *testing.T) {
	err := config.ShallowMergeYAML(nil, "unused.yaml")
	assert.Error(t, err)
}

func TestShallowMergeYAML_MissingFile(t *testing.T) {
	err := config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
