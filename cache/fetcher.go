package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves the upstream catalog feed. Implementations must be safe
// for concurrent use.
type Fetcher interface {
	// FetchSnapshot returns the raw snapshot document.
	FetchSnapshot(ctx context.Context) ([]byte, error)

	// FetchLocale returns the raw translation catalog for a locale.
	FetchLocale(ctx context.Context, locale string) ([]byte, error)
}

// HTTPFetcher fetches the feed over HTTP. The snapshot lives at
// <base>/catalog.json and translation catalogs at <base>/locales/<code>.json.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 30 second timeout.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewHTTPFetcher creates a fetcher for an upstream feed base URL.
func NewHTTPFetcher(baseURL string, opts ...HTTPFetcherOption) (*HTTPFetcher, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	f := &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchSnapshot returns the raw snapshot document.
func (f *HTTPFetcher) FetchSnapshot(ctx context.Context) ([]byte, error) {
	return f.get(ctx, f.baseURL+"/catalog.json")
}

// FetchLocale returns the raw translation catalog for a locale.
func (f *HTTPFetcher) FetchLocale(ctx context.Context, locale string) ([]byte, error) {
	return f.get(ctx, f.baseURL+"/locales/"+url.PathEscape(locale)+".json")
}

func (f *HTTPFetcher) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFetchFailed, target, err)
	}
	return body, nil
}
