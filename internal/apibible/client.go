// Package apibible is a minimal client for the scripture.api.bible
// passage endpoint. It performs exactly one blocking GET per passage and
// never retries; pacing and retry policy belong to the caller.
package apibible

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// DefaultBaseURL is the production endpoint.
const DefaultBaseURL = "https://api.scripture.api.bible"

// Client fetches passages from one API.Bible deployment.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a passage client. An empty baseURL selects the
// production endpoint. The key is sent on every request; the endpoint
// rejects requests without one.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: "dailybread/1.0",
	}
}

// Passage is one retrieved reading.
type Passage struct {
	// ID is the canonical passage identifier as echoed by the endpoint.
	ID string `json:"id"`

	// Reference is the endpoint's human-readable rendering.
	Reference string `json:"reference"`

	// Content is the raw HTML fragment.
	Content string `json:"content"`

	// Copyright is the attribution line for the translation.
	Copyright string `json:"copyright"`
}

// passageEnvelope mirrors the endpoint's response shape.
type passageEnvelope struct {
	Data Passage `json:"data"`
}

// GetPassage fetches one passage of the given bible. The request asks for
// HTML content with verse numbers and without titles or notes, which is
// the shape the markup normalizer expects.
func (c *Client) GetPassage(ctx context.Context, bibleID, passageID string) (*Passage, error) {
	if bibleID == "" {
		return nil, errors.NewValidation("bibleID", "must not be empty")
	}
	if passageID == "" {
		return nil, errors.NewValidation("passageID", "must not be empty")
	}
	if !strings.HasPrefix(c.baseURL, "http://") && !strings.HasPrefix(c.baseURL, "https://") {
		return nil, errors.NewUnsupported("URL scheme", c.baseURL)
	}

	query := url.Values{
		"content-type":          {"html"},
		"include-notes":         {"false"},
		"include-titles":        {"false"},
		"include-verse-numbers": {"true"},
	}
	endpoint := fmt.Sprintf("%s/v1/bibles/%s/passages/%s?%s", c.baseURL, bibleID, passageID, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewIO("fetch", passageID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewIO("read response for", passageID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var envelope passageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &errors.ParseError{Format: "passage response", Input: passageID, Message: "invalid JSON", Err: err}
	}

	return &envelope.Data, nil
}

// FetchError is a non-2xx response from the endpoint. The body text is
// kept because the endpoint explains failures there.
type FetchError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *FetchError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("endpoint returned %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("endpoint returned %s", e.Status)
}

// IsNotFound returns true if this is a 404 error.
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *FetchError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusNotFound:
		return errors.ErrNotFound
	}
	return nil
}
