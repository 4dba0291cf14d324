package winelist

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MinSearchLength is the shortest term Search and Suggest respond to.
const MinSearchLength = 2

// ByFamily returns the wines listed under family.
func ByFamily(wines []*Wine, family Family) []*Wine {
	return filter(wines, func(w *Wine) bool {
		return w.Family() == family
	})
}

// ByRegion returns the wines whose normalized region equals the
// normalized form of region.
func ByRegion(wines []*Wine, region string) []*Wine {
	want := NormalizeRegion(region)
	return filter(wines, func(w *Wine) bool {
		return w.NormalizedRegion() == want
	})
}

// ByVarietal returns the wines whose varietals contain text, ignoring case.
func ByVarietal(wines []*Wine, text string) []*Wine {
	needle := strings.ToLower(text)
	return filter(wines, func(w *Wine) bool {
		return strings.Contains(strings.ToLower(w.Varietals), needle)
	})
}

// FilterBySearchTerm narrows a wine list by free text across name, region,
// varietals and producer. A blank term keeps every wine. Unlike Search there
// is no minimum length: a one-letter term still filters, since the list view
// narrows as the guest types.
func FilterBySearchTerm(wines []*Wine, term string) []*Wine {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return filter(wines, func(*Wine) bool { return true })
	}
	return filter(wines, func(w *Wine) bool {
		return containsAny(needle, w.Name, w.Region, w.Varietals, w.Producer)
	})
}

// Search is the global search used for autocomplete. It matches across
// name, region, varietals, producer and description, and returns nothing for
// terms shorter than MinSearchLength.
func Search(wines []*Wine, term string) []*Wine {
	needle := strings.ToLower(strings.TrimSpace(term))
	if utf8.RuneCountInString(needle) < MinSearchLength {
		return nil
	}
	return filter(wines, func(w *Wine) bool {
		return containsAny(needle, w.Name, w.Region, w.Varietals, w.Producer, w.Description)
	})
}

// SuggestionKind identifies what a suggestion points at.
type SuggestionKind string

// SuggestionKind constants.
const (
	SuggestRegion SuggestionKind = "region"
	SuggestWine   SuggestionKind = "wine"
)

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Kind   SuggestionKind `json:"kind"`
	Label  string         `json:"label"`
	Region string         `json:"region,omitempty"`
	Number string         `json:"number,omitempty"`
}

// Suggest returns autocomplete entries for term: regions present in wines
// whose name contains the term come first, then matching wines. A limit of
// zero means no limit.
func Suggest(wines []*Wine, term string, limit int) []Suggestion {
	needle := strings.ToLower(strings.TrimSpace(term))
	if utf8.RuneCountInString(needle) < MinSearchLength {
		return nil
	}

	out := []Suggestion{}
	for _, r := range RegionsOf(wines) {
		if strings.Contains(strings.ToLower(r), needle) {
			out = append(out, Suggestion{Kind: SuggestRegion, Label: r, Region: r})
		}
	}
	for _, w := range Search(wines, term) {
		out = append(out, Suggestion{
			Kind:   SuggestWine,
			Label:  w.Name + " — " + w.Producer,
			Region: w.NormalizedRegion(),
			Number: w.Number,
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FindByNumber returns the first wine whose number equals id. Numbers are
// compared as strings and, when both sides are numeric, as numbers, so "42"
// matches a wine numbered 42 or 42.0. Only finite numbers compare
// numerically. Returns ENOTFOUND if no wine matches.
func FindByNumber(wines []*Wine, id string) (*Wine, error) {
	id = strings.TrimSpace(id)
	idNum, idOK := parseFinite(id)
	for _, w := range wines {
		if w.Number == id {
			return w, nil
		}
		if !idOK || w.Number == "" {
			continue
		}
		if n, ok := parseFinite(w.Number); ok && n == idNum {
			return w, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "wine %q not found", id)
}

// parseFinite parses s as a finite number. Inf and NaN spellings are rejected.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// WineFilter represents a filter for Apply. Nil fields do not restrict.
// Fields combine with AND.
type WineFilter struct {
	Family   *Family `json:"family"`
	Region   *string `json:"region"`
	Varietal *string `json:"varietal"`
	Search   *string `json:"search"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Apply returns the wines matching every set field of the filter,
// then applies Offset and Limit.
func (f WineFilter) Apply(wines []*Wine) []*Wine {
	out := wines
	if f.Family != nil {
		out = ByFamily(out, *f.Family)
	}
	if f.Region != nil {
		out = ByRegion(out, *f.Region)
	}
	if f.Varietal != nil {
		out = ByVarietal(out, *f.Varietal)
	}
	if f.Search != nil {
		out = FilterBySearchTerm(out, *f.Search)
	} else {
		out = filter(out, func(*Wine) bool { return true })
	}

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*Wine{}
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// filter returns a new slice holding the wines for which keep returns true.
func filter(wines []*Wine, keep func(*Wine) bool) []*Wine {
	out := make([]*Wine, 0, len(wines))
	for _, w := range wines {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
