package batch

import (
	"context"
	"errors"
	"time"

	"github.com/ecosystemplus/farmcarbon/internal/farm"
	"github.com/ecosystemplus/farmcarbon/internal/logging"
	"github.com/ecosystemplus/farmcarbon/internal/report"
)

// Generator produces reports; *report.Assembler implements it.
type Generator interface {
	Generate(rec farm.Record) (report.Report, error)
	GenerateForMonth(rec farm.Record, month int) (report.Report, error)
	GenerateCurrent(rec farm.Record) (report.Report, error)
}

// Options configure Run.
type Options struct {
	// Workers bounds concurrency; zero means DefaultWorkers.
	Workers int
	// Month applies to items that set neither a season nor a month.
	Month int
	// OnProgress is called after each farm.
	OnProgress ProgressCallback
}

// Result is the outcome for one farm. Exactly one of Report and Err is set.
// ID is set by callers that save the report.
type Result struct {
	Index  int            `json:"index"`
	Name   string         `json:"name"`
	ID     string         `json:"id,omitempty"`
	Report *report.Report `json:"report,omitempty"`
	Err    error          `json:"-"`
	Error  string         `json:"error,omitempty"`
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Run generates a report for every item. Invalid farm data is recorded on
// the item's Result; any other failure aborts the run.
func Run(ctx context.Context, gen Generator, items []Item, opts Options) ([]Result, Summary, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "batch").
		Str("operation", "Run").
		Logger()

	workers := opts.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	p, err := NewProcessor[Item, Result](workers)
	if err != nil {
		return nil, Summary{}, err
	}
	p.WithProgressCallback(opts.OnProgress)

	start := time.Now()
	logger.Debug().Int("farms", len(items)).Int("workers", workers).Msg("batch started")

	results, err := p.Process(ctx, items, func(_ context.Context, i int, item Item) (Result, error) {
		res := Result{Index: i, Name: item.Name}
		r, genErr := generate(gen, item, opts.Month)
		switch {
		case genErr == nil:
			res.Report = &r
		case errors.Is(genErr, farm.ErrInvalidInput):
			res.Err = genErr
			res.Error = genErr.Error()
			logger.Warn().Str("farm", item.Name).Err(genErr).Msg("farm skipped")
		default:
			return Result{}, genErr
		}
		return res, nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("batch aborted")
		return nil, Summary{}, err
	}

	summary := Summary{Total: len(results), Elapsed: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Dur("elapsed", summary.Elapsed).
		Msg("batch finished")
	return results, summary, nil
}

func generate(gen Generator, item Item, defaultMonth int) (report.Report, error) {
	switch {
	case item.Season != "":
		return gen.Generate(item.Record)
	case item.Month != 0:
		return gen.GenerateForMonth(item.Record, item.Month)
	case defaultMonth != 0:
		return gen.GenerateForMonth(item.Record, defaultMonth)
	default:
		return gen.GenerateCurrent(item.Record)
	}
}
