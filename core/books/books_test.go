package books

import "testing"

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		wantCode string
		wantOK   bool
	}{
		{"Genesis", "GEN", true},
		{"Psalms", "PSA", true},
		{"Psalm", "PSA", true},
		{"Song of Solomon", "SNG", true},
		{"Song of Songs", "SNG", true},
		{"2 John", "2JN", true},
		{"Philemon", "PHM", true},
		{"Revelation", "REV", true},
		{"Letter of Jeremiah", "LJE", true},
		{"NotABook", "", false},
		{"genesis", "", false}, // no case folding
		{"Gen", "", false},     // no abbreviations
		{"", "", false},
	}

	for _, tt := range tests {
		code, ok := Code(tt.name)
		if code != tt.wantCode || ok != tt.wantOK {
			t.Errorf("Code(%q) = (%q, %v), want (%q, %v)", tt.name, code, ok, tt.wantCode, tt.wantOK)
		}
	}
}

func TestSingleChapter(t *testing.T) {
	single := []string{"OBA", "PHM", "2JN", "3JN", "JUD", "LJE", "MAN", "PS2"}
	for _, code := range single {
		if !SingleChapter(code) {
			t.Errorf("SingleChapter(%q) = false, want true", code)
		}
	}

	multi := []string{"GEN", "PSA", "JHN", "REV"}
	for _, code := range multi {
		if SingleChapter(code) {
			t.Errorf("SingleChapter(%q) = true, want false", code)
		}
	}

	if got := len(singleChapter); got != 8 {
		t.Errorf("single-chapter set has %d members, want 8", got)
	}
}

// TestTableConsistency checks that the single-chapter set is exactly the
// set of table entries whose chapter count is one.
func TestTableConsistency(t *testing.T) {
	count := 0
	for _, b := range books {
		if b.Chapters == 1 {
			count++
			if !SingleChapter(b.Code) {
				t.Errorf("%s has 1 chapter but is not in the single-chapter set", b.Code)
			}
		} else if SingleChapter(b.Code) {
			t.Errorf("%s is in the single-chapter set but has %d chapters", b.Code, b.Chapters)
		}
	}
	if count != len(singleChapter) {
		t.Errorf("table has %d one-chapter books, set has %d", count, len(singleChapter))
	}

	seen := make(map[string]bool, len(books))
	for _, b := range books {
		if seen[b.Code] {
			t.Errorf("duplicate book code %q", b.Code)
		}
		seen[b.Code] = true
	}
}

func TestValid(t *testing.T) {
	for _, code := range []string{"GEN", "PSA", "2JN", "PS2", "REV"} {
		if !Valid(code) {
			t.Errorf("Valid(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"XYZ", "gen", "", "GENESIS"} {
		if Valid(code) {
			t.Errorf("Valid(%q) = true, want false", code)
		}
	}
}

func TestChapters(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"GEN", 50},
		{"PSA", 150},
		{"PHM", 1},
		{"XYZ", 0},
	}
	for _, tt := range tests {
		if got := Chapters(tt.code); got != tt.want {
			t.Errorf("Chapters(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
