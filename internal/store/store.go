// Package store persists passage records, one JSON file per schedule
// date, under an output root partitioned by translation:
//
//	out/web/2026-01-15.json
//
// A record is immutable once written. Re-running a fetch never overwrites
// a file; callers check Exists and skip, and Write refuses to clobber.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/DailyBread/core/digest"
	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// Record is the persisted unit for one date.
type Record struct {
	// Text is the normalized passage: plain text with <sup>N</sup> verse
	// markers and bare <p> paragraph breaks.
	Text string `json:"text"`

	// Attribution is the translation's copyright line.
	Attribution string `json:"attribution"`
}

// Store reads and writes records for one translation.
type Store struct {
	root        string
	translation string
}

// New creates a store rooted at root for the given translation. Nothing
// is created on disk until the first write.
func New(root, translation string) *Store {
	return &Store{root: root, translation: translation}
}

// Dir returns the directory holding this translation's records.
func (s *Store) Dir() string {
	return filepath.Join(s.root, s.translation)
}

// Path returns the file path for a date's record.
func (s *Store) Path(date string) string {
	return filepath.Join(s.Dir(), date+".json")
}

// Exists reports whether a record for the date is already on disk.
func (s *Store) Exists(date string) bool {
	_, err := os.Stat(s.Path(date))
	return err == nil
}

// WriteResult describes a persisted record.
type WriteResult struct {
	Path      string
	SizeBytes int
	Hash      string
}

// Write persists the record for a date. It fails if a record already
// exists; existing records are never touched.
func (s *Store) Write(date string, rec Record) (*WriteResult, error) {
	path := s.Path(date)

	if s.Exists(date) {
		return nil, errors.Wrapf(errors.ErrAlreadyExists, "record for %s", date)
	}

	if err := os.MkdirAll(s.Dir(), 0755); err != nil {
		return nil, errors.NewIO("create directory", s.Dir(), err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling record")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, errors.NewIO("write", path, err)
	}

	return &WriteResult{
		Path:      path,
		SizeBytes: len(data),
		Hash:      digest.Sum(data),
	}, nil
}

// Read loads the record for a date.
func (s *Store) Read(date string) (*Record, error) {
	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("record", date)
		}
		return nil, errors.NewIO("read", s.Path(date), err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &errors.ParseError{Format: "record", Input: s.Path(date), Message: "invalid JSON", Err: err}
	}

	return &rec, nil
}

// Dates lists the dates with records on disk, in date order. A missing
// directory is an empty store, not an error.
func (s *Store) Dates() ([]string, error) {
	items, err := os.ReadDir(s.Dir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIO("read directory", s.Dir(), err)
	}

	var dates []string
	for _, item := range items {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	return dates, nil
}
