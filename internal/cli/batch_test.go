package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchFile = `farms:
  - name: valley maize
    area_hectares: 10
    season: dry
    farming_method: organic
    fertilizer_level: medium
    livestock:
      cattle: 5
    monthly_fuel_liters: 50
  - name: hillside coffee
    area_hectares: 2.5
    farming_method: agroforestry
    fertilizer_level: low
    month: 7
  - name: ridge goats
    area_hectares: 4
    season: rainy
    farming_method: conventional
    fertilizer_level: high
    livestock:
      goat: 12
      dragon: 1
`

func writeBatchFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchFile), 0o600))
	return path
}

func TestBatchCmd_Table(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "batch", "--input", writeBatchFile(t), "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "FARM")
	assert.Contains(t, out, "valley maize")
	assert.Contains(t, out, "1,520.35")
	assert.Contains(t, out, "hillside coffee")
	assert.Contains(t, out, "ridge goats")
	assert.Contains(t, out, "dragon")
	assert.Contains(t, out, "3 farms: 2 succeeded, 1 failed in")
}

func TestBatchCmd_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "batch", "--input", writeBatchFile(t), "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Summary struct {
			Total     int `json:"total"`
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"summary"`
		Results []struct {
			Index  int    `json:"index"`
			Name   string `json:"name"`
			Error  string `json:"error"`
			Report *struct {
				Info struct {
					Season       string `json:"season"`
					SeasonSource string `json:"season_source"`
				} `json:"calculation_info"`
			} `json:"report"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 2, doc.Summary.Succeeded)
	assert.Equal(t, 1, doc.Summary.Failed)
	require.Len(t, doc.Results, 3)

	for i, res := range doc.Results {
		assert.Equal(t, i, res.Index, "results keep input order")
	}
	require.NotNil(t, doc.Results[1].Report)
	assert.Equal(t, "rainy", doc.Results[1].Report.Info.Season, "July falls in the rainy season")
	assert.Equal(t, "month", doc.Results[1].Report.Info.SeasonSource)
	assert.Nil(t, doc.Results[2].Report)
	assert.Contains(t, doc.Results[2].Error, "dragon")
}

func TestBatchCmd_SaveAndHistory(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "batch", "--input", writeBatchFile(t), "--save")
	require.NoError(t, err)

	out, err := runCLI(t, "history", "list", "--output", "json")
	require.NoError(t, err)

	var summaries []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	assert.Len(t, summaries, 2)
}

func TestBatchCmd_MissingInput(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "batch", "--input", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
