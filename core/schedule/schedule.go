// Package schedule reads the tabular reading plan that drives a fetch
// run. Each record is one day: a date key, two fields the fetcher does
// not use, and a human-readable scripture reference that may be quoted
// to protect internal commas:
//
//	2026-01-15,Epiphany,Week 3,"John 9:1-12, 35-41"
//
// Records that do not fit this shape are reported, not fatal; the caller
// decides how loudly to warn.
package schedule

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// Entry is one valid schedule record.
type Entry struct {
	// Date is the schedule key in YYYY-MM-DD form. It names the output
	// file for the day.
	Date string

	// Reference is the raw human-readable reading, quotes removed.
	Reference string
}

// Malformed describes a schedule record that was skipped.
type Malformed struct {
	// Line is the 1-based line number in the source.
	Line int

	// Text is the offending record, fields rejoined.
	Text string

	// Reason says what was wrong with it.
	Reason string
}

// Read parses schedule records from r in order. Valid records become
// entries; records with the wrong shape are collected separately so the
// caller can warn about them. The error return is reserved for failures
// of the reader itself.
func Read(r io.Reader) ([]Entry, []Malformed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var entries []Entry
	var malformed []Malformed

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A quoting error spoils the line, not the run.
			if parseErr, ok := err.(*csv.ParseError); ok {
				malformed = append(malformed, Malformed{
					Line:   parseErr.Line,
					Text:   strings.Join(record, ","),
					Reason: parseErr.Err.Error(),
				})
				continue
			}
			return nil, nil, errors.NewIO("read", "schedule", err)
		}

		line, _ := reader.FieldPos(0)

		if len(record) < 4 {
			malformed = append(malformed, Malformed{
				Line:   line,
				Text:   strings.Join(record, ","),
				Reason: "expected date, two fields, and a reference",
			})
			continue
		}

		date := strings.TrimSpace(record[0])
		if _, err := time.Parse("2006-01-02", date); err != nil {
			malformed = append(malformed, Malformed{
				Line:   line,
				Text:   strings.Join(record, ","),
				Reason: "date is not YYYY-MM-DD",
			})
			continue
		}

		// An unquoted reference with internal commas splits into extra
		// fields; rejoin them.
		reference := strings.TrimSpace(strings.Join(record[3:], ", "))
		if reference == "" {
			malformed = append(malformed, Malformed{
				Line:   line,
				Text:   strings.Join(record, ","),
				Reason: "empty reference",
			})
			continue
		}

		entries = append(entries, Entry{Date: date, Reference: reference})
	}

	return entries, malformed, nil
}

// Load reads the schedule file at path.
func Load(path string) ([]Entry, []Malformed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	return Read(f)
}
