package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/store"
)

// Output formats.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
	outputYAML   = "yaml"
)

// newAssembler builds a report assembler over the configured factor table.
func newAssembler(ctx context.Context) (*report.Assembler, error) {
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	table, err := cfg.LoadFactors()
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("factors_file", cfg.Factors.File).Msg("failed to load emission factors")
		return nil, fmt.Errorf("loading emission factors: %w", err)
	}
	log.Debug().Ctx(ctx).
		Str("factor_version", table.Version()).
		Str("methodology", table.Methodology()).
		Msg("emission factors loaded")

	return report.New(table)
}

// openStore opens the configured report store.
func openStore(ctx context.Context) (*store.Store, error) {
	path := config.GetGlobalConfig().Store.Path
	st, err := store.Open(ctx, path)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Error().Ctx(ctx).Err(err).Str("store_path", path).Msg("failed to open report store")
		return nil, fmt.Errorf("opening report store: %w", err)
	}
	return st, nil
}

// resolveOutputFormat returns flagValue checked against supported. An empty
// flagValue selects the configured default, or the first supported format
// when the command cannot render the default.
func resolveOutputFormat(flagValue string, supported ...string) (string, error) {
	if len(supported) == 0 {
		supported = config.SupportedOutputFormats()
	}
	format := flagValue
	if format == "" {
		format = config.GetDefaultOutputFormat()
		if !slices.Contains(supported, format) {
			format = supported[0]
		}
	}
	if !slices.Contains(supported, format) {
		return "", fmt.Errorf("unsupported output format: %s (supported: %v)", format, supported)
	}
	return format, nil
}
