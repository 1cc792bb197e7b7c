// Package season maps points in time to the climate season used for
// seasonal emission factors.
//
// The calendar follows the bimodal pattern of the Cameroonian highlands the
// factor table was calibrated for: a wet season from March through October
// and a dry season from November through February.
package season

import (
	"strconv"
	"time"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
)

// Rainy season bounds, inclusive.
const (
	RainyStartMonth = 3
	RainyEndMonth   = 10
)

// Clock supplies the current time. It is only consulted at the boundary.
type Clock func() time.Time

// FromMonth returns the season for a month number between 1 and 12.
func FromMonth(month int) (farm.Season, error) {
	if month < 1 || month > 12 {
		return "", &farm.InvalidInputError{
			Field:  farm.FieldMonth,
			Value:  strconv.Itoa(month),
			Reason: "must be between 1 and 12",
		}
	}
	if month >= RainyStartMonth && month <= RainyEndMonth {
		return farm.SeasonRainy, nil
	}
	return farm.SeasonDry, nil
}

// FromTime returns the season for the calendar month of t.
func FromTime(t time.Time) farm.Season {
	s, _ := FromMonth(int(t.Month()))
	return s
}

// Current returns the season for the time reported by clock, or for the wall
// clock when clock is nil.
func Current(clock Clock) farm.Season {
	if clock == nil {
		clock = time.Now
	}
	return FromTime(clock())
}
