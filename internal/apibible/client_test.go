package apibible

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// TestNewClient tests creating a new client.
func TestNewClient(t *testing.T) {
	client := NewClient("", "test-key")
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.userAgent == "" {
		t.Error("userAgent is empty")
	}

	trimmed := NewClient("https://example.com/", "test-key")
	if trimmed.baseURL != "https://example.com" {
		t.Errorf("baseURL = %q, want trailing slash removed", trimmed.baseURL)
	}
}

// TestGetPassage tests a successful passage fetch.
func TestGetPassage(t *testing.T) {
	body := `{
		"data": {
			"id": "JHN.9.1-JHN.9.41",
			"reference": "John 9:1-41",
			"content": "<p class=\"p\"><span data-number=\"1\" data-sid=\"JHN 9:1\" class=\"v\">1</span>As he passed by, he saw a man blind from birth.</p>",
			"copyright": "PUBLIC DOMAIN"
		},
		"meta": {"fums": ""}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/bibles/9879dbb7cfe39e4d-01/passages/JHN.9.1-JHN.9.41" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key header = %q, want %q", got, "secret")
		}
		q := r.URL.Query()
		if q.Get("content-type") != "html" {
			t.Errorf("content-type = %q, want html", q.Get("content-type"))
		}
		if q.Get("include-titles") != "false" {
			t.Errorf("include-titles = %q, want false", q.Get("include-titles"))
		}
		if q.Get("include-notes") != "false" {
			t.Errorf("include-notes = %q, want false", q.Get("include-notes"))
		}
		if q.Get("include-verse-numbers") != "true" {
			t.Errorf("include-verse-numbers = %q, want true", q.Get("include-verse-numbers"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	passage, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", "JHN.9.1-JHN.9.41")
	if err != nil {
		t.Fatalf("GetPassage failed: %v", err)
	}

	if passage.ID != "JHN.9.1-JHN.9.41" {
		t.Errorf("ID = %q, want %q", passage.ID, "JHN.9.1-JHN.9.41")
	}
	if passage.Reference != "John 9:1-41" {
		t.Errorf("Reference = %q, want %q", passage.Reference, "John 9:1-41")
	}
	if passage.Copyright != "PUBLIC DOMAIN" {
		t.Errorf("Copyright = %q, want %q", passage.Copyright, "PUBLIC DOMAIN")
	}
	if passage.Content == "" {
		t.Error("Content is empty")
	}
}

// TestGetPassageNotFound tests handling a 404 response.
func TestGetPassageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"statusCode":404,"error":"Not Found","message":"passage not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", "JHN.99.1")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	fetchErr, ok := err.(*FetchError)
	if !ok {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if !fetchErr.IsNotFound() {
		t.Errorf("expected 404, got %d", fetchErr.StatusCode)
	}
	if fetchErr.Body == "" {
		t.Error("expected response body in error")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Error("error should match ErrNotFound")
	}
}

// TestGetPassageUnauthorized tests handling a rejected credential.
func TestGetPassageUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode":401,"error":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong-key")
	_, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", "PSA.32")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !errors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("error should match ErrUnauthorized, got %v", err)
	}
}

// TestGetPassageEmptyArguments tests argument validation.
func TestGetPassageEmptyArguments(t *testing.T) {
	client := NewClient("", "secret")

	if _, err := client.GetPassage(context.Background(), "", "PSA.32"); err == nil {
		t.Error("expected error for empty bibleID")
	}
	if _, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", ""); err == nil {
		t.Error("expected error for empty passageID")
	}
}

// TestGetPassageUnsupportedScheme tests rejection of non-HTTP endpoints.
func TestGetPassageUnsupportedScheme(t *testing.T) {
	client := NewClient("ftp://example.com", "secret")

	_, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", "PSA.32")
	if err == nil {
		t.Fatal("expected error for FTP endpoint")
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("error should match ErrUnsupported, got %v", err)
	}
}

// TestGetPassageBadJSON tests handling an unparseable response body.
func TestGetPassageBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.GetPassage(context.Background(), "9879dbb7cfe39e4d-01", "PSA.32")
	if err == nil {
		t.Fatal("expected error for unparseable body")
	}

	var parseErr *errors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %T", err)
	}
}

// TestLookupTranslation tests translation selector resolution.
func TestLookupTranslation(t *testing.T) {
	tr, err := LookupTranslation("web")
	if err != nil {
		t.Fatalf("LookupTranslation(web) failed: %v", err)
	}
	if tr.ID != "9879dbb7cfe39e4d-01" {
		t.Errorf("ID = %q, want %q", tr.ID, "9879dbb7cfe39e4d-01")
	}
	if tr.Abbreviation != "WEB" {
		t.Errorf("Abbreviation = %q, want WEB", tr.Abbreviation)
	}

	_, err = LookupTranslation("niv")
	if err == nil {
		t.Fatal("expected error for unknown translation")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error should match ErrNotFound, got %v", err)
	}
}

// TestNames tests the selector list used in usage messages.
func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(Translations()) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(Translations()))
	}
	if names[0] != "web" {
		t.Errorf("names[0] = %q, want web", names[0])
	}

	for _, name := range names {
		if _, err := LookupTranslation(name); err != nil {
			t.Errorf("LookupTranslation(%q) failed: %v", name, err)
		}
	}
}
