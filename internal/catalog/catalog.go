// Package catalog keeps a SQLite ledger of fetch runs beside the cached
// passage files. The files remain the source of truth; the catalog adds
// what a directory listing cannot answer: which run wrote a record, from
// which raw reference, and with what content hash.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/FocuswithJustin/DailyBread/core/errors"
	"github.com/FocuswithJustin/DailyBread/core/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		translation TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		fetched INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		errors INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS fetches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		translation TEXT NOT NULL,
		date TEXT NOT NULL,
		reference TEXT NOT NULL,
		passage_id TEXT NOT NULL,
		path TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		content_hash TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		UNIQUE (translation, date),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE INDEX IF NOT EXISTS idx_fetches_run ON fetches(run_id);
`

// Catalog is an open ledger database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog at path.
func Open(path string) (*Catalog, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open catalog", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating catalog schema")
	}

	return &Catalog{db: db}, nil
}

// OpenReadOnly opens an existing catalog for reporting. The schema is not
// touched and any write through the returned catalog fails.
func OpenReadOnly(path string) (*Catalog, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewIO("open catalog", path, err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Run is one batch invocation.
type Run struct {
	ID          string
	Translation string
	StartedAt   time.Time
	FinishedAt  time.Time // zero until the run finishes
	Fetched     int
	Skipped     int
	Errors      int
}

// BeginRun records the start of a batch run.
func (c *Catalog) BeginRun(ctx context.Context, runID, translation string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (id, translation, started_at) VALUES (?, ?, ?)`,
		runID, translation, time.Now().UTC().Format(time.RFC3339))
	return errors.Wrap(err, "recording run start")
}

// FinishRun records the end of a batch run with its final counters.
func (c *Catalog) FinishRun(ctx context.Context, runID string, fetched, skipped, errorCount int) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, fetched = ?, skipped = ?, errors = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), fetched, skipped, errorCount, runID)
	return errors.Wrap(err, "recording run finish")
}

// Fetch is one persisted passage file.
type Fetch struct {
	RunID       string
	Translation string
	Date        string
	Reference   string
	PassageID   string
	Path        string
	SizeBytes   int64
	ContentHash string
	FetchedAt   time.Time
}

// RecordFetch records a persisted record. A date fetched again after its
// file was removed replaces the earlier row; the catalog mirrors what is
// on disk. A zero FetchedAt means now.
func (c *Catalog) RecordFetch(ctx context.Context, f Fetch) error {
	fetchedAt := f.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fetches (run_id, translation, date, reference, passage_id, path, size_bytes, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (translation, date) DO UPDATE SET
			run_id = excluded.run_id,
			reference = excluded.reference,
			passage_id = excluded.passage_id,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at`,
		f.RunID, f.Translation, f.Date, f.Reference, f.PassageID, f.Path,
		f.SizeBytes, f.ContentHash, fetchedAt.Format(time.RFC3339))
	return errors.Wrap(err, "recording fetch")
}

// Lookup returns the catalog row for one date.
func (c *Catalog) Lookup(ctx context.Context, translation, date string) (*Fetch, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT run_id, translation, date, reference, passage_id, path, size_bytes, content_hash, fetched_at
		FROM fetches WHERE translation = ? AND date = ?`,
		translation, date)

	f, err := scanFetch(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("catalog entry", date)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog entry")
	}
	return f, nil
}

// Fetches lists the catalog rows for a translation in date order.
func (c *Catalog) Fetches(ctx context.Context, translation string) ([]*Fetch, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT run_id, translation, date, reference, passage_id, path, size_bytes, content_hash, fetched_at
		FROM fetches WHERE translation = ? ORDER BY date`,
		translation)
	if err != nil {
		return nil, errors.Wrap(err, "listing catalog entries")
	}
	defer rows.Close()

	var fetches []*Fetch
	for rows.Next() {
		f, err := scanFetch(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning catalog entry")
		}
		fetches = append(fetches, f)
	}
	return fetches, rows.Err()
}

// Summary aggregates the cached records for one translation.
type Summary struct {
	Translation string
	Records     int
	FirstDate   string
	LastDate    string
	TotalBytes  int64
}

// Summarize computes the cache summary for a translation.
func (c *Catalog) Summarize(ctx context.Context, translation string) (*Summary, error) {
	s := &Summary{Translation: translation}

	var first, last sql.NullString
	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(date), MAX(date), COALESCE(SUM(size_bytes), 0)
		FROM fetches WHERE translation = ?`,
		translation).Scan(&s.Records, &first, &last, &s.TotalBytes)
	if err != nil {
		return nil, errors.Wrap(err, "summarizing catalog")
	}

	s.FirstDate = first.String
	s.LastDate = last.String
	return s, nil
}

// Runs lists the most recent runs, newest first.
func (c *Catalog) Runs(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, translation, started_at, finished_at, fetched, skipped, errors
		FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var started string
		var finished sql.NullString
		if err := rows.Scan(&r.ID, &r.Translation, &started, &finished, &r.Fetched, &r.Skipped, &r.Errors); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		if finished.Valid {
			r.FinishedAt, _ = time.Parse(time.RFC3339, finished.String)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFetch(s scanner) (*Fetch, error) {
	var f Fetch
	var fetchedAt string
	if err := s.Scan(&f.RunID, &f.Translation, &f.Date, &f.Reference, &f.PassageID,
		&f.Path, &f.SizeBytes, &f.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}
	f.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
	return &f, nil
}
