package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/report"
)

func TestParseLivestock(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]int
		wantErr bool
	}{
		{name: "none", pairs: nil, want: map[string]int{}},
		{name: "single", pairs: []string{"cattle=5"}, want: map[string]int{"cattle": 5}},
		{name: "spaces", pairs: []string{" goat = 3 "}, want: map[string]int{"goat": 3}},
		{name: "repeated keeps last", pairs: []string{"pigs=1", "pigs=4"}, want: map[string]int{"pigs": 4}},
		{name: "missing separator", pairs: []string{"cattle"}, wantErr: true},
		{name: "missing type", pairs: []string{"=5"}, wantErr: true},
		{name: "not a number", pairs: []string{"sheep=many"}, wantErr: true},
		{name: "fractional", pairs: []string{"sheep=1.5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLivestock(tt.pairs)
			if tt.wantErr {
				require.ErrorIs(t, err, farm.ErrInvalidInput)
				var inputErr *farm.InvalidInputError
				require.ErrorAs(t, err, &inputErr)
				assert.Equal(t, farm.FieldLivestock, inputErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvOutputFormat, "json")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	tests := []struct {
		name      string
		flag      string
		supported []string
		want      string
		wantErr   bool
	}{
		{name: "configured default", want: "json"},
		{name: "explicit flag", flag: "ndjson", want: "ndjson"},
		{name: "default unsupported by command", supported: []string{"yaml", "table"}, want: "yaml"},
		{name: "default supported by command", supported: []string{"yaml", "json"}, want: "json"},
		{name: "unsupported flag", flag: "csv", wantErr: true},
		{name: "flag outside command formats", flag: "ndjson", supported: []string{"table", "json"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutputFormat(tt.flag, tt.supported...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeasonText(t *testing.T) {
	assert.Equal(t, "dry", seasonText(report.Metadata{
		Season:       farm.SeasonDry,
		SeasonSource: report.SeasonSourceExplicit,
	}))
	assert.Equal(t, "rainy (from April)", seasonText(report.Metadata{
		Season:       farm.SeasonRainy,
		SeasonSource: report.SeasonSourceMonth,
		Month:        4,
	}))
}
