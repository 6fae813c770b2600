// Package ref converts human-readable reading references into canonical
// passage identifiers and parses the canonical form itself.
//
// A canonical identifier names a whole chapter ("PSA.32") or a verse span
// ("ROM.8.1-ROM.8.17"). It is the only shape the retrieval endpoint
// accepts, and ref is the only package that constructs it.
package ref

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/DailyBread/core/books"
	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// Part is one bound of a passage identifier.
type Part struct {
	// Book is the USFM-style book code (e.g., "GEN", "ROM", "2JN").
	Book string

	// Chapter is the chapter number (1-indexed).
	Chapter int

	// Verse is the verse number (1-indexed, 0 for whole-chapter bounds).
	Verse int
}

// String returns the dotted form of the bound ("ROM.8" or "ROM.8.1").
func (p Part) String() string {
	var sb strings.Builder
	sb.WriteString(p.Book)
	sb.WriteString(".")
	sb.WriteString(strconv.Itoa(p.Chapter))
	if p.Verse > 0 {
		sb.WriteString(".")
		sb.WriteString(strconv.Itoa(p.Verse))
	}
	return sb.String()
}

// ID is a canonical passage identifier: a single bound, or a start-end span.
type ID struct {
	Start Part
	End   *Part
}

// IsRange reports whether the identifier spans two bounds.
func (id ID) IsRange() bool {
	return id.End != nil
}

// String returns the canonical identifier string.
func (id ID) String() string {
	if id.End == nil {
		return id.Start.String()
	}
	return id.Start.String() + "-" + id.End.String()
}

// idGrammar is the participle grammar for canonical passage identifiers.
// Examples: "PSA.32", "ROM.8.1-ROM.8.17", "2JN.1.1-2JN.1.13"
//
//nolint:govet // participle grammar tags are not standard struct tags
type idGrammar struct {
	Start partNode  `parser:"@@"`
	End   *partNode `parser:"( '-' @@ )?"`
}

// partNode is one dotted bound. Book codes may carry a leading digit
// ("2JN") which lexes as a separate Int token, so the grammar captures an
// optional numeric prefix and rejoins it with the name.
//
//nolint:govet // participle grammar tags are not standard struct tags
type partNode struct {
	Prefix  string `parser:"@Int?"`
	Name    string `parser:"@Ident"`
	Chapter int    `parser:"'.' @Int"`
	Verse   *int   `parser:"( '.' @Int )?"`
}

// idLexer defines the lexer for canonical identifiers.
// Ident admits trailing digits so codes like "PS2" stay one token.
var idLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Z][A-Z0-9]*`},
	{Name: "Punct", Pattern: `[.\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// idParser is the participle parser for canonical identifiers.
var idParser = participle.MustBuild[idGrammar](
	participle.Lexer(idLexer),
	participle.Elide("Whitespace"),
)

// ParseID parses a canonical passage identifier string.
// Supported forms:
//   - "PSA.32" (whole chapter)
//   - "ROM.8.1" (single verse)
//   - "ROM.8.1-ROM.8.17" (verse span)
//   - "JHN.7.53-JHN.8.11" (span crossing a chapter)
//
// Book codes are validated against the book index, and a span must carry a
// verse on both bounds.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, errors.NewParse("passage id", s, "empty identifier")
	}

	parsed, err := idParser.ParseString("", s)
	if err != nil {
		return ID{}, &errors.ParseError{Format: "passage id", Input: s, Message: "invalid syntax", Err: err}
	}

	start, err := parsed.Start.toPart(s)
	if err != nil {
		return ID{}, err
	}
	id := ID{Start: start}

	if parsed.End != nil {
		end, err := parsed.End.toPart(s)
		if err != nil {
			return ID{}, err
		}
		if start.Verse == 0 || end.Verse == 0 {
			return ID{}, errors.NewParse("passage id", s, "span bounds must name verses")
		}
		id.End = &end
	}

	return id, nil
}

func (n *partNode) toPart(input string) (Part, error) {
	code := n.Prefix + n.Name
	if !books.Valid(code) {
		return Part{}, errors.NewParse("passage id", input, "unknown book code "+code)
	}
	if n.Chapter < 1 {
		return Part{}, errors.NewParse("passage id", input, "chapter must be positive")
	}
	p := Part{Book: code, Chapter: n.Chapter}
	if n.Verse != nil {
		if *n.Verse < 1 {
			return Part{}, errors.NewParse("passage id", input, "verse must be positive")
		}
		p.Verse = *n.Verse
	}
	return p, nil
}
