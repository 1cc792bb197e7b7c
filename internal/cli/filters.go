package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/store"
)

// History filter keys.
const (
	filterMethod    = "method"
	filterSeason    = "season"
	filterIntensity = "intensity"
)

// ErrInvalidFilter is returned for a malformed history filter.
var ErrInvalidFilter = errors.New("invalid filter")

// ApplyFilters validates "key=value" history filters and sets them on q.
// Accepted keys are method, season and intensity. Empty filter strings are
// ignored and a repeated key keeps its last value. No filter is applied when
// any is invalid.
func ApplyFilters(ctx context.Context, q *store.Query, filters []string) error {
	log := logging.FromContext(ctx)

	parsed := make(map[string]string, len(filters))
	for _, f := range filters {
		if f == "" {
			continue
		}
		key, value, err := parseFilter(f)
		if err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", f).
				Err(err).
				Msg("invalid filter expression")
			return err
		}
		parsed[key] = value
	}

	for key, value := range parsed {
		switch key {
		case filterMethod:
			q.FarmingMethod = value
		case filterSeason:
			q.Season = value
		case filterIntensity:
			q.CarbonIntensity = value
		}
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("key", key).
			Str("value", value).
			Msg("applied filter")
	}
	return nil
}

func parseFilter(f string) (string, string, error) {
	key, value, ok := strings.Cut(f, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("%w: %q: expected key=value", ErrInvalidFilter, f)
	}
	switch key {
	case filterMethod, filterSeason, filterIntensity:
		return key, value, nil
	default:
		return "", "", fmt.Errorf("%w: unknown key %q (valid: %s, %s, %s)",
			ErrInvalidFilter, key, filterMethod, filterSeason, filterIntensity)
	}
}
