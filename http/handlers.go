package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/s4ng4/winelist"
)

// Default page sizes.
const (
	DefaultSuggestLimit = 10
	DefaultSearchLimit  = 20
)

// wineView is the API representation of a wine: the stored fields plus the
// values derived from them.
type wineView struct {
	*winelist.Wine
	CanonicalRegion string          `json:"canonicalRegion"`
	Family          winelist.Family `json:"family"`
	Year            string          `json:"year"`
	DisplayPrice    string          `json:"displayPrice"`
}

func newWineViews(wines []*winelist.Wine) []wineView {
	out := make([]wineView, len(wines))
	for i, w := range wines {
		out[i] = wineView{
			Wine:            w,
			CanonicalRegion: w.NormalizedRegion(),
			Family:          w.Family(),
			Year:            w.Year(),
			DisplayPrice:    w.DisplayPrice(),
		}
	}
	return out
}

type wineList struct {
	Total int        `json:"total"`
	Wines []wineView `json:"wines"`
}

type regionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type familyCount struct {
	Family winelist.Family `json:"family"`
	Count  int             `json:"count"`
}

type listWinesQuery struct {
	Family   string `query:"family" validate:"max=32"`
	Region   string `query:"region" validate:"max=64"`
	Varietal string `query:"varietal" validate:"max=64"`
	Q        string `query:"q" validate:"max=100"`
	Offset   int    `query:"offset" validate:"gte=0"`
	Limit    int    `query:"limit" validate:"gte=0,lte=500"`
}

type termQuery struct {
	Q     string `query:"q" validate:"max=100"`
	Limit int    `query:"limit" validate:"gte=1,lte=100"`
}

// current returns the served state, writing 503 if no catalog is loaded.
func (s *Server) current(w http.ResponseWriter) (*state, bool) {
	st := s.state.Load()
	if st == nil || st.catalog == nil {
		writeError(w, winelist.Errorf(winelist.EUNAVAILABLE, "catalog not loaded"), s.logger)
		return nil, false
	}
	return st, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"wines":  st.catalog.Len(),
	}, s.logger)
}

func (s *Server) handleListWines(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	values := r.URL.Query()
	q := listWinesQuery{
		Family:   values.Get("family"),
		Region:   values.Get("region"),
		Varietal: values.Get("varietal"),
		Q:        values.Get("q"),
	}
	var err error
	if q.Offset, err = queryInt(values, "offset", 0); err != nil {
		writeError(w, err, s.logger)
		return
	}
	if q.Limit, err = queryInt(values, "limit", 0); err != nil {
		writeError(w, err, s.logger)
		return
	}
	if err := s.check(q); err != nil {
		writeError(w, err, s.logger)
		return
	}

	var filter winelist.WineFilter
	if q.Family != "" {
		family, err := winelist.ParseFamily(q.Family)
		if err != nil {
			writeError(w, err, s.logger)
			return
		}
		filter.Family = &family
	}
	if q.Region != "" {
		filter.Region = &q.Region
	}
	if q.Varietal != "" {
		filter.Varietal = &q.Varietal
	}
	if q.Q != "" {
		filter.Search = &q.Q
	}

	matched := filter.Apply(st.catalog.Wines())
	page := winelist.WineFilter{Offset: q.Offset, Limit: q.Limit}.Apply(matched)

	writeJSON(w, http.StatusOK, wineList{Total: len(matched), Wines: newWineViews(page)}, s.logger)
}

func (s *Server) handleGetWine(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	wine, err := winelist.FindByNumber(st.catalog.Wines(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, newWineViews([]*winelist.Wine{wine})[0], s.logger)
}

func (s *Server) handleListRegions(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	counts := st.catalog.Report().Regions
	regions := st.catalog.Regions()
	out := make([]regionCount, len(regions))
	for i, region := range regions {
		out[i] = regionCount{Region: region, Count: counts[region]}
	}
	writeJSON(w, http.StatusOK, out, s.logger)
}

func (s *Server) handleListFamilies(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	counts := st.catalog.Report().Families
	families := winelist.Families()
	out := make([]familyCount, len(families))
	for i, f := range families {
		out[i] = familyCount{Family: f, Count: counts[f]}
	}
	writeJSON(w, http.StatusOK, out, s.logger)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	q, err := s.parseTermQuery(r.URL.Query(), DefaultSuggestLimit)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}

	suggestions := winelist.Suggest(st.catalog.Wines(), q.Q, q.Limit)
	if suggestions == nil {
		suggestions = []winelist.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions, s.logger)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	q, err := s.parseTermQuery(r.URL.Query(), DefaultSearchLimit)
	if err != nil {
		writeError(w, err, s.logger)
		return
	}

	var wines []*winelist.Wine
	if st.searcher != nil {
		if wines, err = st.searcher.SearchWines(r.Context(), q.Q, q.Limit); err != nil {
			writeError(w, err, s.logger)
			return
		}
	} else {
		wines = winelist.WineFilter{Limit: q.Limit}.Apply(winelist.Search(st.catalog.Wines(), q.Q))
	}
	writeJSON(w, http.StatusOK, newWineViews(wines), s.logger)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, st.catalog.Report(), s.logger)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	st, ok := s.current(w)
	if !ok {
		return
	}

	base := s.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := WriteSitemap(w, base, st.catalog); err != nil {
		s.logger.Error("failed to write sitemap", "error", err)
	}
}

func (s *Server) parseTermQuery(values url.Values, defaultLimit int) (termQuery, error) {
	q := termQuery{Q: values.Get("q")}
	var err error
	if q.Limit, err = queryInt(values, "limit", defaultLimit); err != nil {
		return q, err
	}
	return q, s.check(q)
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(values url.Values, key string, def int) (int, error) {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, winelist.Errorf(winelist.EINVALID, "invalid %s: must be an integer", key)
	}
	return n, nil
}

// check validates a query struct, converting the first failure into an
// EINVALID error.
func (s *Server) check(q any) error {
	err := s.validate.Struct(q)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	return winelist.Errorf(winelist.EINVALID, "invalid %s: %s", e.Field(), friendlyMessage(e))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
