package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		input         CarbonInput
		wantMiles     float64
		wantSeedlings float64
		wantIsEmpty   bool
		wantErr       error
	}{
		{
			name:          "monthly farm total",
			input:         CarbonInput{Value: 1520.35, Unit: "kg"},
			wantMiles:     3868.58, // 1520.35 / 0.393
			wantSeedlings: 25.34,   // 1520.35 / 60
		},
		{
			name:          "tonnes normalized",
			input:         CarbonInput{Value: 1.2, Unit: "tCO2e"},
			wantMiles:     3053.44,
			wantSeedlings: 20,
		},
		{
			name:          "grams normalized",
			input:         CarbonInput{Value: 60000, Unit: "g"},
			wantMiles:     152.67,
			wantSeedlings: 1,
		},
		{
			name:          "empty unit means kilograms",
			input:         CarbonInput{Value: 120},
			wantMiles:     305.34,
			wantSeedlings: 2,
		},
		{
			name:        "below threshold",
			input:       CarbonInput{Value: 0.5, Unit: "kg"},
			wantIsEmpty: true,
		},
		{
			name:        "zero",
			input:       CarbonInput{Value: 0, Unit: "kg"},
			wantIsEmpty: true,
		},
		{
			name:    "negative",
			input:   CarbonInput{Value: -10, Unit: "kg"},
			wantErr: ErrNegativeValue,
		},
		{
			name:    "unknown unit",
			input:   CarbonInput{Value: 10, Unit: "kWh"},
			wantErr: ErrInvalidUnit,
		},
		{
			name:    "not a number",
			input:   CarbonInput{Value: math.NaN(), Unit: "kg"},
			wantErr: ErrCalculationOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty)
				assert.Empty(t, got.Results)
				return
			}

			assert.False(t, got.IsEmpty)
			require.Len(t, got.Results, 3)

			miles, ok := got.Result(EquivalencyMilesDriven)
			require.True(t, ok)
			assert.InDelta(t, tt.wantMiles, miles.Value, tt.wantMiles*0.01)
			assert.Equal(t, "miles driven", miles.Label)

			seedlings, ok := got.Result(EquivalencyTreeSeedlings)
			require.True(t, ok)
			assert.InDelta(t, tt.wantSeedlings, seedlings.Value, tt.wantSeedlings*0.01)
		})
	}
}

func TestCalculate_DisplayText(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 1520.35, Unit: "kg"})
	require.NoError(t, err)

	assert.Equal(t, "Equivalent to driving ~3,869 miles; ~25 tree seedlings grown for 10 years absorb the same", got.DisplayText)
	assert.Equal(t, "(≈ 3,869 mi, 25 seedlings)", got.CompactText)
}

func TestCalculate_LargeValues(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 1_000_000, Unit: "kg"})
	require.NoError(t, err)
	assert.Contains(t, got.DisplayText, "million")

	got, err = Calculate(CarbonInput{Value: 1_000_000, Unit: "t"})
	require.NoError(t, err)
	assert.Contains(t, got.DisplayText, "billion")
}

func TestForEmissions(t *testing.T) {
	out := ForEmissions(600)
	assert.False(t, out.IsEmpty)
	seedlings, ok := out.Result(EquivalencyTreeSeedlings)
	require.True(t, ok)
	assert.InDelta(t, 10.0, seedlings.Value, 1e-9)

	assert.True(t, ForEmissions(-1).IsEmpty)
	assert.True(t, ForEmissions(0).IsEmpty)

	_, ok = ForEmissions(0).Result(EquivalencyMilesDriven)
	assert.False(t, ok)
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "TreeSeedlings", EquivalencyTreeSeedlings.String())
	assert.Equal(t, "HomeDays", EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}

func BenchmarkCalculate(b *testing.B) {
	input := CarbonInput{Value: 1520.35, Unit: "kg"}
	for b.Loop() {
		_, _ = Calculate(input)
	}
}
