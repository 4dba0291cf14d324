// Package bleve provides a ranked full-text winelist.Searcher backed by an
// in-memory bleve index.
package bleve

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/s4ng4/winelist"
)

// Ensure Index implements winelist.Searcher at compile time.
var _ winelist.Searcher = (*Index)(nil)

// Field boosts. Name matches rank above producer matches, which rank above
// matches in the longer descriptive fields.
const (
	boostName        = 3.0
	boostProducer    = 2.0
	boostVarietals   = 1.5
	boostRegion      = 1.5
	boostDescription = 1.0
	boostFuzzy       = 0.8
	boostPrefix      = 0.5
)

// textFields are the indexed fields and their boosts.
var textFields = []struct {
	name  string
	boost float64
}{
	{"name", boostName},
	{"producer", boostProducer},
	{"varietals", boostVarietals},
	{"region", boostRegion},
	{"description", boostDescription},
}

// Index is an immutable search index over the wines of one catalog.
// Build a new Index when the catalog changes.
type Index struct {
	index bleve.Index
	wines []*winelist.Wine
}

// NewIndex builds an in-memory index over the wines of c.
func NewIndex(c *winelist.Catalog) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	wines := c.Wines()
	batch := index.NewBatch()
	for i, w := range wines {
		if err := batch.Index(docID(i), document(w)); err != nil {
			index.Close()
			return nil, fmt.Errorf("index wine %q: %w", w.Number, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("index catalog: %w", err)
	}

	return &Index{index: index, wines: wines}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// SearchWines returns up to limit wines matching q, best match first; wines
// with equal scores keep catalog order. Terms shorter than
// winelist.MinSearchLength return nothing. A limit of zero means no limit.
func (i *Index) SearchWines(ctx context.Context, q string, limit int) ([]*winelist.Wine, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < winelist.MinSearchLength {
		return nil, nil
	}
	if limit <= 0 || limit > len(i.wines) {
		limit = len(i.wines)
	}
	if limit == 0 {
		return []*winelist.Wine{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q), limit, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	wines := make([]*winelist.Wine, 0, len(result.Hits))
	for _, hit := range result.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil || pos < 0 || pos >= len(i.wines) {
			return nil, fmt.Errorf("unexpected document id %q", hit.ID)
		}
		wines = append(wines, i.wines[pos])
	}
	return wines, nil
}

// docID returns the document ID of the wine at position pos. IDs are zero
// padded so that sorting by ID follows catalog order.
func docID(pos int) string {
	return fmt.Sprintf("%08d", pos)
}

// document returns the indexed fields of w. The region field carries both
// the raw and canonical spellings so either one finds the wine.
func document(w *winelist.Wine) map[string]any {
	region := w.Region
	if canonical := w.NormalizedRegion(); canonical != strings.ToUpper(region) {
		region += " " + canonical
	}
	return map[string]any{
		"name":        w.Name,
		"producer":    w.Producer,
		"varietals":   w.Varietals,
		"region":      region,
		"description": w.Description,
	}
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()
	for _, f := range textFields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = simple.Name
		fm.Store = false
		docMapping.AddFieldMappingsAt(f.name, fm)
	}
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// buildQuery matches q against every field, plus a fuzzy match on the name
// for typos and a prefix match on the last word for type-ahead.
func buildQuery(q string) query.Query {
	var queries []query.Query

	for _, f := range textFields {
		m := bleve.NewMatchQuery(q)
		m.SetField(f.name)
		m.SetBoost(f.boost)
		queries = append(queries, m)
	}

	fuzzy := bleve.NewMatchQuery(q)
	fuzzy.SetField("name")
	fuzzy.SetFuzziness(1)
	fuzzy.SetBoost(boostFuzzy)
	queries = append(queries, fuzzy)

	words := strings.Fields(strings.ToLower(q))
	if last := words[len(words)-1]; utf8.RuneCountInString(last) >= winelist.MinSearchLength {
		for _, field := range []string{"name", "producer", "varietals"} {
			p := bleve.NewPrefixQuery(last)
			p.SetField(field)
			p.SetBoost(boostPrefix)
			queries = append(queries, p)
		}
	}

	return bleve.NewDisjunctionQuery(queries...)
}
