package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntensity(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		area  float64
		want  Intensity
	}{
		{"zero emissions", 0, 1, IntensityLow},
		{"just below low limit", 999, 1, IntensityLow},
		{"low limit", 1000, 1, IntensityMedium},
		{"just below medium limit", 2999.99, 1, IntensityMedium},
		{"medium limit", 3000, 1, IntensityHigh},
		{"just below high limit", 4999.99, 1, IntensityHigh},
		{"high limit", 5000, 1, IntensityVeryHigh},
		{"spread over area", 9000, 10, IntensityLow},
		{"zero area", 500, 0, IntensityUnknown},
		{"negative area", 500, -2, IntensityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntensity(tt.total, tt.area))
		})
	}
}

func TestPerHectare(t *testing.T) {
	assert.InDelta(t, 152.035, PerHectare(1520.35, 10), 1e-9)
	assert.Zero(t, PerHectare(1520.35, 0))
	assert.Zero(t, PerHectare(1520.35, -1))
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{152.0353, 2, 152.04},
		{705.8333, 2, 705.83},
		{93.8, 2, 93.8},
		{2.5, 0, 3},
		{-1.26, 1, -1.3},
		{1.23456, -1, 1.23456},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round(tt.v, tt.places), 1e-9, "Round(%v, %d)", tt.v, tt.places)
	}
}
