// Package openlibrary looks up book metadata by ISBN using the OpenLibrary
// Books API, batching all requested ISBNs into a single request.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/bookinfo/internal/enrichment/book"
)

// DefaultBaseURL is the public OpenLibrary endpoint.
const DefaultBaseURL = "https://openlibrary.org"

// Client fetches book metadata from OpenLibrary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the OpenLibrary base URL (used for tests and mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds each lookup request. Zero or negative means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates an OpenLibrary client. Requests have no timeout unless
// WithTimeout is given. The timeout is applied to a copy of the HTTP client,
// so a client passed through WithHTTPClient is never modified.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

// BooksURL builds the batched lookup URL for isbns.
func (c *Client) BooksURL(isbns []string) string {
	bibkeys := make([]string, len(isbns))
	for i, isbn := range isbns {
		bibkeys[i] = bibKeyPrefix + isbn
	}

	query := url.Values{}
	query.Set("bibkeys", strings.Join(bibkeys, ","))
	query.Set("jscmd", "data")
	query.Set("format", "json")

	return c.baseURL + "/api/books?" + query.Encode()
}

// FetchBooks looks up all isbns with one request.
// The result is keyed by ISBN without the "ISBN:" prefix. ISBNs unknown to
// OpenLibrary, and entries without a title, are left out of the result.
// Transport failures and non-success statuses return an error and no data.
func (c *Client) FetchBooks(ctx context.Context, isbns []string) (map[string]book.Metadata, error) {
	if len(isbns) == 0 {
		return nil, book.ErrNoIdentifiers
	}

	apiURL := c.BooksURL(isbns)
	slog.Info("Sending request to OpenLibrary", "isbns", len(isbns), "url", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenLibrary API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: OpenLibrary returned status %s", book.ErrAPIUnavailable, resp.Status)
	}

	var payload booksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode OpenLibrary response: %w", err)
	}

	result := make(map[string]book.Metadata, len(payload))
	for key, raw := range payload {
		isbn := strings.TrimPrefix(key, bibKeyPrefix)

		meta, err := parseEntry(raw)
		if err != nil {
			slog.Debug("Skipping OpenLibrary entry", "isbn", isbn, "error", err)
			continue
		}
		result[isbn] = meta
	}

	slog.Info("OpenLibrary request completed", "requested", len(isbns), "found", len(result))
	return result, nil
}

// parseEntry converts a single response entry into metadata.
func parseEntry(raw json.RawMessage) (book.Metadata, error) {
	var entry bookEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return book.Metadata{}, fmt.Errorf("decoding entry: %w", err)
	}

	title := textValue(entry.Title)
	if title == "" {
		return book.Metadata{}, book.ErrMissingTitle
	}

	authors := make([]string, 0, len(entry.Authors))
	for _, author := range entry.Authors {
		authors = append(authors, author.Name)
	}

	return book.Metadata{
		Title:         title,
		Subtitle:      textValue(entry.Subtitle),
		Authors:       authors,
		NumberOfPages: textValue(entry.NumberOfPages),
		PublishDate:   textValue(entry.PublishDate),
	}, nil
}

// textValue renders a raw JSON value as text: strings are unquoted, null
// or missing values become "", anything else is kept as its JSON literal.
func textValue(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return trimmed
}
