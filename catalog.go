package winelist

import (
	"context"
	"encoding/json"
	"io"
)

// CatalogSource loads the raw wine records of a catalog.
type CatalogSource interface {
	// LoadRawWines returns the records of the catalog's "wines" array in
	// document order. Returns EINVALID if the payload is not a catalog.
	LoadRawWines(ctx context.Context) ([]RawWine, error)
}

// Catalog is the admitted, ordered working set of wines.
// A Catalog is immutable once built and safe for concurrent use.
type Catalog struct {
	wines  []*Wine
	report Report
}

// Report holds informational statistics gathered during ingestion.
type Report struct {
	Total    int `json:"total"`
	Admitted int `json:"admitted"`

	// Rejected counts dropped records per rejection message.
	Rejected map[string]int `json:"rejected"`

	// DuplicateNumbers lists numbers shared by more than one admitted wine.
	DuplicateNumbers []string `json:"duplicateNumbers"`

	// SuspiciousRegions lists raw region names that are not on the allow-list.
	SuspiciousRegions []string `json:"suspiciousRegions"`

	Families map[Family]int `json:"families"`
	Regions  map[string]int `json:"regions"`
}

// Ingest builds a Catalog from raw records. Records failing Validate are
// dropped; the admitted wines keep their source order.
func Ingest(raws []RawWine) *Catalog {
	report := Report{
		Total:    len(raws),
		Rejected: make(map[string]int),
		Families: make(map[Family]int),
		Regions:  make(map[string]int),
	}

	wines := make([]*Wine, 0, len(raws))
	seenNumbers := make(map[string]int)
	seenRegions := make(map[string]bool)

	for _, raw := range raws {
		w := ParseWine(raw)
		if err := w.Validate(); err != nil {
			report.Rejected[ErrorMessage(err)]++
			if w.Region != "" && !IsKnownRegion(w.Region) && !seenRegions[w.Region] {
				seenRegions[w.Region] = true
				report.SuspiciousRegions = append(report.SuspiciousRegions, w.Region)
			}
			continue
		}

		wines = append(wines, w)
		report.Families[w.Family()]++
		report.Regions[w.NormalizedRegion()]++

		if w.Number != "" {
			seenNumbers[w.Number]++
			if seenNumbers[w.Number] == 2 {
				report.DuplicateNumbers = append(report.DuplicateNumbers, w.Number)
			}
		}
	}
	report.Admitted = len(wines)

	return &Catalog{wines: wines, report: report}
}

// Wines returns the admitted wines in source order. The returned slice is a
// copy; the wines themselves must not be modified.
func (c *Catalog) Wines() []*Wine {
	out := make([]*Wine, len(c.wines))
	copy(out, c.wines)
	return out
}

// Len returns the number of admitted wines.
func (c *Catalog) Len() int {
	return len(c.wines)
}

// Report returns the ingestion statistics.
func (c *Catalog) Report() Report {
	return c.report
}

// Regions returns the regions present in the catalog. See RegionsOf.
func (c *Catalog) Regions() []string {
	return RegionsOf(c.wines)
}

// RegionsOf returns the canonical regions present among wines, north to
// south, followed by any other normalized regions in first-seen order.
func RegionsOf(wines []*Wine) []string {
	present := make(map[string]bool)
	var extra []string
	for _, w := range wines {
		r := w.NormalizedRegion()
		if !present[r] {
			present[r] = true
			if !isCanonicalRegion(r) {
				extra = append(extra, r)
			}
		}
	}

	var out []string
	for _, r := range regionOrder {
		if present[r] {
			out = append(out, r)
		}
	}
	return append(out, extra...)
}

func isCanonicalRegion(r string) bool {
	for _, c := range regionOrder {
		if c == r {
			return true
		}
	}
	return false
}

// catalogDocument is the top-level JSON shape of a catalog file.
type catalogDocument struct {
	Wines *[]json.RawMessage `json:"wines"`
}

// DecodeRawWines parses a catalog document of the form {"wines": [...]}.
// Array elements that are not JSON objects are skipped.
func DecodeRawWines(r io.Reader) ([]RawWine, error) {
	var doc catalogDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Errorf(EINVALID, "catalog is not valid JSON: %s", err)
	}
	if doc.Wines == nil {
		return nil, Errorf(EINVALID, "catalog has no wines array")
	}

	raws := make([]RawWine, 0, len(*doc.Wines))
	for _, msg := range *doc.Wines {
		var raw RawWine
		if err := json.Unmarshal(msg, &raw); err != nil || raw == nil {
			continue
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// LoadCatalog loads raw records from src and ingests them. Application
// errors from the source are returned as is; any other failure to read the
// source is returned as EUNAVAILABLE.
func LoadCatalog(ctx context.Context, src CatalogSource) (*Catalog, error) {
	raws, err := src.LoadRawWines(ctx)
	if err != nil {
		if ErrorCode(err) != EINTERNAL {
			return nil, err
		}
		return nil, Errorf(EUNAVAILABLE, "catalog unavailable: %s", err)
	}
	return Ingest(raws), nil
}
