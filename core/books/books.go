// Package books provides the static index of scripture books: full English
// name to USFM-style book code, chapter counts, and the single-chapter set
// used by reference parsing.
package books

// Book holds metadata for a single book.
type Book struct {
	Name     string
	Code     string
	Chapters int
}

// books lists every known book in canonical order.
var books = []Book{
	// Old Testament
	{"Genesis", "GEN", 50},
	{"Exodus", "EXO", 40},
	{"Leviticus", "LEV", 27},
	{"Numbers", "NUM", 36},
	{"Deuteronomy", "DEU", 34},
	{"Joshua", "JOS", 24},
	{"Judges", "JDG", 21},
	{"Ruth", "RUT", 4},
	{"1 Samuel", "1SA", 31},
	{"2 Samuel", "2SA", 24},
	{"1 Kings", "1KI", 22},
	{"2 Kings", "2KI", 25},
	{"1 Chronicles", "1CH", 29},
	{"2 Chronicles", "2CH", 36},
	{"Ezra", "EZR", 10},
	{"Nehemiah", "NEH", 13},
	{"Esther", "EST", 10},
	{"Job", "JOB", 42},
	{"Psalms", "PSA", 150},
	{"Proverbs", "PRO", 31},
	{"Ecclesiastes", "ECC", 12},
	{"Song of Solomon", "SNG", 8},
	{"Isaiah", "ISA", 66},
	{"Jeremiah", "JER", 52},
	{"Lamentations", "LAM", 5},
	{"Ezekiel", "EZK", 48},
	{"Daniel", "DAN", 12},
	{"Hosea", "HOS", 14},
	{"Joel", "JOL", 3},
	{"Amos", "AMO", 9},
	{"Obadiah", "OBA", 1},
	{"Jonah", "JON", 4},
	{"Micah", "MIC", 7},
	{"Nahum", "NAM", 3},
	{"Habakkuk", "HAB", 3},
	{"Zephaniah", "ZEP", 3},
	{"Haggai", "HAG", 2},
	{"Zechariah", "ZEC", 14},
	{"Malachi", "MAL", 4},
	// Deuterocanon (present in several supported translations)
	{"Tobit", "TOB", 14},
	{"Judith", "JDT", 16},
	{"Wisdom of Solomon", "WIS", 19},
	{"Sirach", "SIR", 51},
	{"Baruch", "BAR", 5},
	{"Letter of Jeremiah", "LJE", 1},
	{"1 Maccabees", "1MA", 16},
	{"2 Maccabees", "2MA", 15},
	{"Prayer of Manasseh", "MAN", 1},
	{"Psalm 151", "PS2", 1},
	// New Testament
	{"Matthew", "MAT", 28},
	{"Mark", "MRK", 16},
	{"Luke", "LUK", 24},
	{"John", "JHN", 21},
	{"Acts", "ACT", 28},
	{"Romans", "ROM", 16},
	{"1 Corinthians", "1CO", 16},
	{"2 Corinthians", "2CO", 13},
	{"Galatians", "GAL", 6},
	{"Ephesians", "EPH", 6},
	{"Philippians", "PHP", 4},
	{"Colossians", "COL", 4},
	{"1 Thessalonians", "1TH", 5},
	{"2 Thessalonians", "2TH", 3},
	{"1 Timothy", "1TI", 6},
	{"2 Timothy", "2TI", 4},
	{"Titus", "TIT", 3},
	{"Philemon", "PHM", 1},
	{"Hebrews", "HEB", 13},
	{"James", "JAS", 5},
	{"1 Peter", "1PE", 5},
	{"2 Peter", "2PE", 3},
	{"1 John", "1JN", 5},
	{"2 John", "2JN", 1},
	{"3 John", "3JN", 1},
	{"Jude", "JUD", 1},
	{"Revelation", "REV", 22},
}

// aliases are additional exact names reading schedules use for table entries.
var aliases = map[string]string{
	"Psalm":         "PSA", // schedules cite individual psalms in the singular
	"Song of Songs": "SNG",
}

// byName maps a full English book name to its code.
var byName = func() map[string]string {
	m := make(map[string]string, len(books)+len(aliases))
	for _, b := range books {
		m[b.Name] = b.Code
	}
	for name, code := range aliases {
		m[name] = code
	}
	return m
}()

// byCode maps a book code to its Book metadata.
var byCode = func() map[string]Book {
	m := make(map[string]Book, len(books))
	for _, b := range books {
		m[b.Code] = b
	}
	return m
}()

// singleChapter is the fixed set of books with exactly one chapter.
// For these, a bare "Book N-M" reference means verses N through M of
// chapter 1 rather than a chapter range.
var singleChapter = map[string]bool{
	"OBA": true,
	"PHM": true,
	"2JN": true,
	"3JN": true,
	"JUD": true,
	"LJE": true,
	"MAN": true,
	"PS2": true,
}

// Code looks up the book code for a full English book name.
// The match is exact: no case folding, no abbreviations. A miss is a
// normal outcome the caller must handle, not an error.
func Code(name string) (string, bool) {
	code, ok := byName[name]
	return code, ok
}

// SingleChapter reports whether code names a book with exactly one chapter.
func SingleChapter(code string) bool {
	return singleChapter[code]
}

// Valid reports whether code is a known book code.
func Valid(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Chapters returns the chapter count for a book code, or 0 if unknown.
func Chapters(code string) int {
	return byCode[code].Chapters
}
