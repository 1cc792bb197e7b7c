package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ecosystemplus/farmcarbon/internal/config"
	"github.com/ecosystemplus/farmcarbon/internal/export"
	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
	"github.com/ecosystemplus/farmcarbon/internal/tui"
)

// ErrNotInteractive is returned when --interactive is used without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal on stdin and stdout")

// reportFlags holds the flags of the report command.
type reportFlags struct {
	area        float64
	method      string
	fertilizer  string
	livestock   []string
	fuel        float64
	season      string
	month       int
	input       string
	output      string
	save        bool
	xlsx        string
	interactive bool
}

// NewReportCmd creates the report command, which builds an emission report
// for one farm.
func NewReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Calculate the monthly emission report of a farm",
		Long: `Calculates fertilizer, livestock and fuel emissions of a farm for one month,
classifies its carbon intensity and recommends ways to reduce emissions.

Farm data comes from flags, from --input (a YAML or JSON farm record), or
both, with flags taking precedence. The season is taken from --season or the
record; otherwise it is derived from --month, or from the current month.`,
		Example: `  # Dry-season report from flags
  farmcarbon report --area 10 --method organic --fertilizer medium \
    --livestock cattle=5 --fuel 50 --season dry

  # Season derived from April, report saved and exported
  farmcarbon report --input farm.yaml --month 4 --save --xlsx report.xlsx

  # Machine-readable output
  farmcarbon report --input farm.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeReport(cmd, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.area, "area", 0, "farm area in hectares")
	cmd.Flags().StringVar(&flags.method, "method", "", "farming method (conventional, organic, agroforestry, conservation, permaculture)")
	cmd.Flags().StringVar(&flags.fertilizer, "fertilizer", "", "fertilizer level (none, low, medium, high)")
	cmd.Flags().StringArrayVar(&flags.livestock, "livestock", nil, "animal count as type=count (repeatable)")
	cmd.Flags().Float64Var(&flags.fuel, "fuel", 0, "monthly fuel use in liters")
	cmd.Flags().StringVar(&flags.season, "season", "", "season (dry, rainy)")
	cmd.Flags().IntVar(&flags.month, "month", 0, "month (1-12) to derive the season from")
	cmd.Flags().StringVar(&flags.input, "input", "", "farm record file (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson")
	cmd.Flags().BoolVar(&flags.save, "save", false, "save the report to the history store")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "also write the report to this Excel file")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "explore the report interactively")
	cmd.MarkFlagsMutuallyExclusive("season", "month")

	return cmd
}

func executeReport(cmd *cobra.Command, flags reportFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx).With().Str("operation", "report").Logger()

	format, err := resolveOutputFormat(flags.output)
	if err != nil {
		return err
	}
	if flags.interactive && !tui.CanRunInteractive() {
		return ErrNotInteractive
	}

	rec, err := buildRecord(cmd, flags)
	if err != nil {
		return err
	}

	asm, err := newAssembler(ctx)
	if err != nil {
		return err
	}

	var r report.Report
	switch {
	case rec.Season != "":
		r, err = asm.Generate(rec)
	case cmd.Flags().Changed("month"):
		r, err = asm.GenerateForMonth(rec, flags.month)
	default:
		r, err = asm.GenerateCurrent(rec)
	}
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("report rejected")
		return err
	}
	log.Debug().Ctx(ctx).
		Float64("total_emissions", r.Emissions.Total).
		Str("carbon_intensity", string(r.Metrics.CarbonIntensity)).
		Msg("report generated")

	cfg := config.GetGlobalConfig()
	var id string
	if flags.save || cfg.Store.Enabled {
		if id, err = saveReport(ctx, r); err != nil {
			return err
		}
	}

	if flags.xlsx != "" {
		rows := []export.Row{{ID: id, Report: r}}
		if err := export.SaveXLSX(flags.xlsx, rows, cfg.Output.Precision); err != nil {
			return err
		}
		log.Info().Ctx(ctx).Str("path", flags.xlsx).Msg("report exported")
	}

	if flags.interactive {
		recalc := func(_ context.Context, edited farm.Record) (report.Report, error) {
			return asm.Generate(edited)
		}
		m := tui.NewReportModel(ctx, r, asm.Table().AnimalTypes(), recalc)
		_, err := tui.RunReportModel(ctx, m)
		return err
	}

	return renderReport(cmd.OutOrStdout(), format, r, id, cfg.Output.Precision)
}

func saveReport(ctx context.Context, r report.Report) (string, error) {
	st, err := openStore(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = st.Close() }()

	id, err := st.Save(ctx, r)
	if err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return id, nil
}

// buildRecord assembles the farm record from --input and the flags that
// were set explicitly.
func buildRecord(cmd *cobra.Command, flags reportFlags) (farm.Record, error) {
	var rec farm.Record
	if flags.input != "" {
		loaded, err := loadRecordFile(flags.input)
		if err != nil {
			return farm.Record{}, err
		}
		rec = loaded
	}

	changed := cmd.Flags().Changed
	if changed("area") {
		rec.AreaHectares = flags.area
	}
	if changed("method") {
		rec.FarmingMethod = farm.FarmingMethod(flags.method)
	}
	if changed("fertilizer") {
		rec.FertilizerLevel = farm.FertilizerLevel(flags.fertilizer)
	}
	if changed("fuel") {
		rec.MonthlyFuelLiters = flags.fuel
	}
	if changed("season") {
		rec.Season = farm.Season(flags.season)
	}
	if changed("month") {
		rec.Season = ""
	}
	if len(flags.livestock) > 0 {
		animals, err := parseLivestock(flags.livestock)
		if err != nil {
			return farm.Record{}, err
		}
		rec.Livestock = animals
	}
	return rec, nil
}

// parseLivestock parses type=count pairs. A repeated type keeps its last
// count.
func parseLivestock(pairs []string) (map[string]int, error) {
	out := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		animal, rawCount, ok := strings.Cut(pair, "=")
		animal = strings.TrimSpace(animal)
		if !ok || animal == "" {
			return nil, &farm.InvalidInputError{
				Field:  farm.FieldLivestock,
				Value:  pair,
				Reason: "expected type=count",
			}
		}
		count, err := strconv.Atoi(strings.TrimSpace(rawCount))
		if err != nil {
			return nil, &farm.InvalidInputError{
				Field:  farm.FieldLivestock,
				Value:  pair,
				Reason: "count for " + animal + " must be a whole number",
			}
		}
		out[animal] = count
	}
	return out, nil
}

// loadRecordFile reads a farm record from a YAML or JSON file.
func loadRecordFile(path string) (farm.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return farm.Record{}, fmt.Errorf("reading farm record %s: %w", path, err)
	}

	var rec farm.Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil && !errors.Is(err, io.EOF) {
		return farm.Record{}, fmt.Errorf("parsing farm record %s: %w", path, err)
	}
	return rec, nil
}
