// Package fs provides file-based catalog sources and storage.
package fs

import (
	"context"
	"os"

	"github.com/s4ng4/winelist"
)

// Ensure Source implements winelist.CatalogSource at compile time.
var _ winelist.CatalogSource = (*Source)(nil)

// Source reads a catalog document from a local file.
type Source struct {
	path string
}

// NewSource creates a Source reading the catalog at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the catalog file path.
func (s *Source) Path() string {
	return s.path
}

// LoadRawWines reads and decodes the catalog file.
func (s *Source) LoadRawWines(ctx context.Context) ([]winelist.RawWine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return winelist.DecodeRawWines(f)
}
