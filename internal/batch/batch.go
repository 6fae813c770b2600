// Package batch drives one fetch-and-cache pass over a reading schedule.
// Entries are processed strictly in file order, one retrieval in flight at
// a time, with a fixed pause after each successful retrieval.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/DailyBread/core/markup"
	"github.com/FocuswithJustin/DailyBread/core/ref"
	"github.com/FocuswithJustin/DailyBread/core/schedule"
	"github.com/FocuswithJustin/DailyBread/internal/apibible"
	"github.com/FocuswithJustin/DailyBread/internal/catalog"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
	"github.com/FocuswithJustin/DailyBread/internal/store"
)

// PassageFetcher retrieves one passage by canonical identifier.
// *apibible.Client satisfies it.
type PassageFetcher interface {
	GetPassage(ctx context.Context, bibleID, passageID string) (*apibible.Passage, error)
}

// Config is the run configuration, captured once before processing starts.
// Nothing reads flags or environment mid-run.
type Config struct {
	// Translation is the short name that partitions the output.
	Translation string

	// BibleID is the remote collection identifier for the translation.
	BibleID string

	// Fetcher performs the remote retrievals.
	Fetcher PassageFetcher

	// Store persists one record per date.
	Store *store.Store

	// Catalog records runs and fetches. Nil disables the ledger.
	Catalog *catalog.Catalog

	// Pause is the fixed interval slept after each successful retrieval.
	Pause time.Duration

	// DryRun reports what would be fetched without network calls or writes.
	DryRun bool
}

// Runner executes one batch run.
type Runner struct {
	cfg   Config
	runID string
	sleep func(time.Duration)
}

// NewRunner creates a runner with a fresh run identifier.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		runID: uuid.NewString(),
		sleep: time.Sleep,
	}
}

// RunID returns the identifier recorded with this run's catalog rows.
func (r *Runner) RunID() string {
	return r.runID
}

// Result holds the aggregate counters for one run.
// Fetched + Skipped + Errors always equals the number of entries processed.
type Result struct {
	Fetched  int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// Run processes entries in order. Per-entry failures are logged and
// counted, never fatal; context cancellation is the only early exit and
// returns the partial result alongside the context's error.
func (r *Runner) Run(ctx context.Context, entries []schedule.Entry) (Result, error) {
	ctx = logging.WithRunID(ctx, r.runID)
	start := time.Now()

	if r.cfg.Catalog != nil && !r.cfg.DryRun {
		if err := r.cfg.Catalog.BeginRun(ctx, r.runID, r.cfg.Translation); err != nil {
			logging.WarnContext(ctx, "catalog_error", "error", err.Error())
		}
	}

	var res Result
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			res.Duration = time.Since(start)
			return res, ctx.Err()
		default:
		}

		if r.cfg.Store.Exists(entry.Date) {
			res.Skipped++
			logging.DebugContext(ctx, "skipped",
				"date", entry.Date, "reference", entry.Reference)
			continue
		}

		id, err := ref.Parse(entry.Reference)
		if err != nil {
			res.Errors++
			logging.ParseFailure(ctx, entry.Date, entry.Reference, err)
			continue
		}

		if r.cfg.DryRun {
			res.Fetched++
			logging.InfoContext(ctx, "would_fetch",
				"date", entry.Date, "reference", entry.Reference, "passage_id", id.String())
			continue
		}

		passage, err := r.cfg.Fetcher.GetPassage(ctx, r.cfg.BibleID, id.String())
		if err != nil {
			res.Errors++
			logging.FetchFailure(ctx, entry.Date, entry.Reference, err)
			continue
		}

		rec := store.Record{
			Text:        markup.Normalize(passage.Content),
			Attribution: passage.Copyright,
		}
		written, err := r.cfg.Store.Write(entry.Date, rec)
		if err != nil {
			res.Errors++
			logging.FetchFailure(ctx, entry.Date, entry.Reference, err)
			continue
		}

		res.Fetched++
		logging.FetchOK(ctx, entry.Date, entry.Reference, id.String(), written.SizeBytes)

		if r.cfg.Catalog != nil {
			f := catalog.Fetch{
				RunID:       r.runID,
				Translation: r.cfg.Translation,
				Date:        entry.Date,
				Reference:   entry.Reference,
				PassageID:   id.String(),
				Path:        written.Path,
				SizeBytes:   int64(written.SizeBytes),
				ContentHash: written.Hash,
			}
			if err := r.cfg.Catalog.RecordFetch(ctx, f); err != nil {
				logging.WarnContext(ctx, "catalog_error",
					"date", entry.Date, "error", err.Error())
			}
		}

		r.sleep(r.cfg.Pause)
	}

	res.Duration = time.Since(start)

	if r.cfg.Catalog != nil && !r.cfg.DryRun {
		if err := r.cfg.Catalog.FinishRun(ctx, r.runID, res.Fetched, res.Skipped, res.Errors); err != nil {
			logging.WarnContext(ctx, "catalog_error", "error", err.Error())
		}
	}

	logging.RunSummary(ctx, r.cfg.Translation, res.Fetched, res.Skipped, res.Errors, res.Duration)
	return res, nil
}
