package mock

import (
	"context"

	"github.com/s4ng4/winelist"
)

var _ winelist.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of winelist.Searcher.
type Searcher struct {
	SearchWinesFn func(ctx context.Context, query string, limit int) ([]*winelist.Wine, error)
}

func (s *Searcher) SearchWines(ctx context.Context, query string, limit int) ([]*winelist.Wine, error) {
	return s.SearchWinesFn(ctx, query, limit)
}
