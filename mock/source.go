package mock

import (
	"context"

	"github.com/s4ng4/winelist"
)

var _ winelist.CatalogSource = (*CatalogSource)(nil)

// CatalogSource is a mock implementation of winelist.CatalogSource.
type CatalogSource struct {
	LoadRawWinesFn func(ctx context.Context) ([]winelist.RawWine, error)
}

func (s *CatalogSource) LoadRawWines(ctx context.Context) ([]winelist.RawWine, error) {
	return s.LoadRawWinesFn(ctx)
}
