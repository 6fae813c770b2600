package ref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/DailyBread/core/books"
	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// shape is one recognized reference form: an anchored matcher and an
// extractor that builds the identifier from its submatches.
type shape struct {
	pattern *regexp.Regexp
	extract func(m []string) (ID, error)
}

// segmentPattern picks the verse pairs out of a comma-joined tail
// like ", 35-41" or ", 10-12, 20-25".
var segmentPattern = regexp.MustCompile(`(\d+)-(\d+)`)

// shapes holds the recognized forms in precedence order. The first pattern
// that matches the whole input decides the outcome; later shapes are never
// consulted, even if book resolution fails.
var shapes = []shape{
	// "John 9:1-12, 35-41": verse range plus comma-joined ranges in the
	// same chapter. The result spans from the first verse to the last,
	// swallowing any gaps between the segments.
	{
		pattern: regexp.MustCompile(`^(.+?) (\d+):(\d+)-(\d+)((?:, ?\d+-\d+)+)$`),
		extract: func(m []string) (ID, error) {
			code, err := bookCode(m[1], m[0])
			if err != nil {
				return ID{}, err
			}
			segs := segmentPattern.FindAllStringSubmatch(m[5], -1)
			last := segs[len(segs)-1]
			chapter := atoi(m[2])
			return ID{
				Start: Part{Book: code, Chapter: chapter, Verse: atoi(m[3])},
				End:   &Part{Book: code, Chapter: chapter, Verse: atoi(last[2])},
			}, nil
		},
	},
	// "Romans 8:1-17": verse range within one chapter.
	{
		pattern: regexp.MustCompile(`^(.+?) (\d+):(\d+)-(\d+)$`),
		extract: func(m []string) (ID, error) {
			code, err := bookCode(m[1], m[0])
			if err != nil {
				return ID{}, err
			}
			chapter := atoi(m[2])
			return ID{
				Start: Part{Book: code, Chapter: chapter, Verse: atoi(m[3])},
				End:   &Part{Book: code, Chapter: chapter, Verse: atoi(m[4])},
			}, nil
		},
	},
	// "Psalm 32": a whole chapter.
	{
		pattern: regexp.MustCompile(`^(.+?) (\d+)$`),
		extract: func(m []string) (ID, error) {
			code, err := bookCode(m[1], m[0])
			if err != nil {
				return ID{}, err
			}
			return ID{Start: Part{Book: code, Chapter: atoi(m[2])}}, nil
		},
	},
	// "Philemon 1-25": a colonless range. For a single-chapter book the
	// numbers are verses of chapter 1. For any other book they are
	// chapters, and only the first survives; the end of the range is
	// dropped without remark, so "Exodus 3-5" fetches chapter 3 alone.
	{
		pattern: regexp.MustCompile(`^(.+?) (\d+)-(\d+)$`),
		extract: func(m []string) (ID, error) {
			code, err := bookCode(m[1], m[0])
			if err != nil {
				return ID{}, err
			}
			if books.SingleChapter(code) {
				return ID{
					Start: Part{Book: code, Chapter: 1, Verse: atoi(m[2])},
					End:   &Part{Book: code, Chapter: 1, Verse: atoi(m[3])},
				}, nil
			}
			return ID{Start: Part{Book: code, Chapter: atoi(m[2])}}, nil
		},
	},
	// "John 7:53-8:11": verse range crossing a chapter boundary.
	{
		pattern: regexp.MustCompile(`^(.+?) (\d+):(\d+)-(\d+):(\d+)$`),
		extract: func(m []string) (ID, error) {
			code, err := bookCode(m[1], m[0])
			if err != nil {
				return ID{}, err
			}
			return ID{
				Start: Part{Book: code, Chapter: atoi(m[2]), Verse: atoi(m[3])},
				End:   &Part{Book: code, Chapter: atoi(m[4]), Verse: atoi(m[5])},
			}, nil
		},
	},
}

// Parse converts a human-readable reading reference into a canonical
// passage identifier. References name the book in full English followed by
// a chapter, a verse range, comma-joined verse ranges, or a cross-chapter
// range ("Psalm 32", "Romans 8:1-17", "John 9:1-12, 35-41",
// "John 7:53-8:11").
//
// Matching is case-sensitive and deterministic. Inputs that fit none of
// the recognized forms, or that name an unknown book, yield a ParseError.
func Parse(raw string) (ID, error) {
	ref := strings.TrimSpace(raw)
	for _, s := range shapes {
		if m := s.pattern.FindStringSubmatch(ref); m != nil {
			return s.extract(m)
		}
	}
	return ID{}, errors.NewParse("reference", raw, "unrecognized reference form")
}

// bookCode resolves a full English book name, reporting the whole
// reference in the error when the name is unknown.
func bookCode(name, reference string) (string, error) {
	code, ok := books.Code(name)
	if !ok {
		return "", errors.NewParse("reference", reference, "unknown book "+strconv.Quote(name))
	}
	return code, nil
}

// atoi converts a digits-only submatch. The patterns guarantee the input
// is numeric.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
