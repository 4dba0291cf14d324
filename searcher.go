package winelist

import "context"

// Searcher performs ranked full-text search over a catalog.
type Searcher interface {
	// SearchWines returns up to limit wines matching query, best match first.
	// Queries shorter than MinSearchLength return no wines.
	SearchWines(ctx context.Context, query string, limit int) ([]*Wine, error)
}
