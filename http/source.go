// Package http provides the HTTP side of winelist: a CatalogSource that
// fetches a catalog over HTTP, and the Server that exposes a catalog as
// JSON and static pages.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/s4ng4/winelist"
)

// DefaultFetchTimeout is the default timeout for catalog requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Source implements winelist.CatalogSource at compile time.
var _ winelist.CatalogSource = (*Source)(nil)

// Source loads a catalog document from a URL.
type Source struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for catalog requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// NewSource creates a Source that fetches the catalog at url.
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:     url,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// URL returns the catalog URL.
func (s *Source) URL() string {
	return s.url
}

// LoadRawWines fetches and decodes the catalog. A response other than
// 200 OK is an error.
func (s *Source) LoadRawWines(ctx context.Context) ([]winelist.RawWine, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, s.url)
	}

	return winelist.DecodeRawWines(resp.Body)
}
