package digest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSum(t *testing.T) {
	// Reference vector for the empty input.
	empty := Sum(nil)
	if empty != "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262" {
		t.Errorf("Sum(nil) = %q, wrong BLAKE3 digest", empty)
	}

	got := Sum([]byte("In the beginning"))
	if len(got) != 64 {
		t.Errorf("len(Sum()) = %d, want 64", len(got))
	}
	if got == empty {
		t.Error("distinct inputs produced the same digest")
	}
	if again := Sum([]byte("In the beginning")); again != got {
		t.Errorf("Sum not deterministic: %q then %q", got, again)
	}
}

func TestSumReader(t *testing.T) {
	content := "<p><sup>1</sup>The earth is the Lord's."

	got, err := SumReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("SumReader() error: %v", err)
	}
	if want := Sum([]byte(content)); got != want {
		t.Errorf("SumReader() = %q, want %q", got, want)
	}
}

func TestSumFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2026-01-15.json")
	content := []byte(`{"text":"<p><sup>1</sup>As he passed by.","attribution":"(WEB)"}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := SumFile(path)
	if err != nil {
		t.Fatalf("SumFile() error: %v", err)
	}
	if want := Sum(content); got != want {
		t.Errorf("SumFile() = %q, want %q", got, want)
	}
}

func TestSumFileMissing(t *testing.T) {
	_, err := SumFile(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("SumFile() expected error for missing file")
	}
}
