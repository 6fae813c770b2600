package ref

import (
	"testing"

	"github.com/FocuswithJustin/DailyBread/core/errors"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
		wantErr  bool
	}{
		// Whole chapter
		{
			input:    "PSA.32",
			expected: ID{Start: Part{Book: "PSA", Chapter: 32}},
		},
		// Single verse
		{
			input:    "ROM.8.1",
			expected: ID{Start: Part{Book: "ROM", Chapter: 8, Verse: 1}},
		},
		// Verse span
		{
			input: "ROM.8.1-ROM.8.17",
			expected: ID{
				Start: Part{Book: "ROM", Chapter: 8, Verse: 1},
				End:   &Part{Book: "ROM", Chapter: 8, Verse: 17},
			},
		},
		// Span crossing a chapter
		{
			input: "JHN.7.53-JHN.8.11",
			expected: ID{
				Start: Part{Book: "JHN", Chapter: 7, Verse: 53},
				End:   &Part{Book: "JHN", Chapter: 8, Verse: 11},
			},
		},
		// Book code with a leading digit
		{
			input: "2JN.1.1-2JN.1.13",
			expected: ID{
				Start: Part{Book: "2JN", Chapter: 1, Verse: 1},
				End:   &Part{Book: "2JN", Chapter: 1, Verse: 13},
			},
		},
		// Book code with a trailing digit
		{
			input:    "PS2.1.1",
			expected: ID{Start: Part{Book: "PS2", Chapter: 1, Verse: 1}},
		},
		// Surrounding whitespace is tolerated
		{
			input:    " PSA.32 ",
			expected: ID{Start: Part{Book: "PSA", Chapter: 32}},
		},
		// Error cases
		{
			input:   "",
			wantErr: true,
		},
		{
			input:   "ROM",
			wantErr: true, // chapter is required
		},
		{
			input:   "XYZ.1",
			wantErr: true, // unknown book code
		},
		{
			input:   "rom.8",
			wantErr: true, // codes are upper case
		},
		{
			input:   "ROM.0",
			wantErr: true,
		},
		{
			input:   "ROM.8.0",
			wantErr: true,
		},
		{
			input:   "PSA.32-PSA.33",
			wantErr: true, // span bounds must name verses
		},
		{
			input:   "ROM.8.1-ROM.8",
			wantErr: true,
		},
		{
			input:   "ROM.8.1-",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		id, err := ParseID(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseID(%q) expected error", tt.input)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseID(%q) error: %v", tt.input, err)
			continue
		}

		if id.Start != tt.expected.Start {
			t.Errorf("ParseID(%q).Start = %+v, want %+v", tt.input, id.Start, tt.expected.Start)
		}
		if (id.End == nil) != (tt.expected.End == nil) {
			t.Errorf("ParseID(%q).End = %v, want %v", tt.input, id.End, tt.expected.End)
			continue
		}
		if id.End != nil && *id.End != *tt.expected.End {
			t.Errorf("ParseID(%q).End = %+v, want %+v", tt.input, *id.End, *tt.expected.End)
		}
	}
}

func TestParseIDErrorType(t *testing.T) {
	_, err := ParseID("XYZ.1")
	if err == nil {
		t.Fatal("ParseID(\"XYZ.1\") expected error")
	}

	var parseErr *errors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error type = %T, want *errors.ParseError", err)
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Error("error should match ErrInvalidInput")
	}
}

func TestPartString(t *testing.T) {
	tests := []struct {
		part     Part
		expected string
	}{
		{Part{Book: "PSA", Chapter: 32}, "PSA.32"},
		{Part{Book: "ROM", Chapter: 8, Verse: 1}, "ROM.8.1"},
		{Part{Book: "2JN", Chapter: 1, Verse: 13}, "2JN.1.13"},
	}

	for _, tt := range tests {
		if got := tt.part.String(); got != tt.expected {
			t.Errorf("Part.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestIDString(t *testing.T) {
	tests := []struct {
		id       ID
		expected string
	}{
		{
			id:       ID{Start: Part{Book: "PSA", Chapter: 32}},
			expected: "PSA.32",
		},
		{
			id: ID{
				Start: Part{Book: "ROM", Chapter: 8, Verse: 1},
				End:   &Part{Book: "ROM", Chapter: 8, Verse: 17},
			},
			expected: "ROM.8.1-ROM.8.17",
		},
		{
			id: ID{
				Start: Part{Book: "JHN", Chapter: 7, Verse: 53},
				End:   &Part{Book: "JHN", Chapter: 8, Verse: 11},
			},
			expected: "JHN.7.53-JHN.8.11",
		},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.expected {
			t.Errorf("ID.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestIDIsRange(t *testing.T) {
	tests := []struct {
		id      ID
		isRange bool
	}{
		{ID{Start: Part{Book: "PSA", Chapter: 32}}, false},
		{ID{Start: Part{Book: "ROM", Chapter: 8, Verse: 1}}, false},
		{
			ID{
				Start: Part{Book: "ROM", Chapter: 8, Verse: 1},
				End:   &Part{Book: "ROM", Chapter: 8, Verse: 17},
			},
			true,
		},
	}

	for _, tt := range tests {
		if got := tt.id.IsRange(); got != tt.isRange {
			t.Errorf("ID{%s}.IsRange() = %v, want %v", tt.id.String(), got, tt.isRange)
		}
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	inputs := []string{
		"PSA.32",
		"ROM.8.1",
		"ROM.8.1-ROM.8.17",
		"JHN.7.53-JHN.8.11",
		"2JN.1.1-2JN.1.13",
		"PS2.1.1-PS2.1.7",
	}

	for _, input := range inputs {
		id, err := ParseID(input)
		if err != nil {
			t.Errorf("ParseID(%q) error: %v", input, err)
			continue
		}

		output := id.String()
		if output != input {
			t.Errorf("ParseID(%q).String() = %q, want %q", input, output, input)
		}
	}
}
