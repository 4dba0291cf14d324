package winelist

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonical region names.
const (
	RegionValleDAosta = "VALLE D'AOSTA"
	RegionPiemonte    = "PIEMONTE"
	RegionLombardia   = "LOMBARDIA"
	RegionTrentino    = "TRENTINO ALTO-ADIGE"
	RegionVeneto      = "VENETO"
	RegionFriuli      = "FRIULI-VENEZIA GIULIA"
	RegionLiguria     = "LIGURIA"
	RegionEmilia      = "EMILIA-ROMAGNA"
	RegionToscana     = "TOSCANA"
	RegionUmbria      = "UMBRIA"
	RegionMarche      = "MARCHE"
	RegionLazio       = "LAZIO"
	RegionAbruzzo     = "ABRUZZO"
	RegionMolise      = "MOLISE"
	RegionCampania    = "CAMPANIA"
	RegionPuglia      = "PUGLIA"
	RegionBasilicata  = "BASILICATA"
	RegionCalabria    = "CALABRIA"
	RegionSicilia     = "SICILIA"
	RegionSardegna    = "SARDEGNA"
)

// regionOrder lists the canonical regions north to south.
var regionOrder = []string{
	RegionValleDAosta, RegionPiemonte, RegionLombardia, RegionTrentino,
	RegionVeneto, RegionFriuli, RegionLiguria, RegionEmilia, RegionToscana,
	RegionUmbria, RegionMarche, RegionLazio, RegionAbruzzo, RegionMolise,
	RegionCampania, RegionPuglia, RegionBasilicata, RegionCalabria,
	RegionSicilia, RegionSardegna,
}

// regionSpellings maps uppercase spellings found in the wine list to their
// canonical region.
var regionSpellings = map[string]string{
	"VALLE D AOSTA":                RegionValleDAosta,
	"VALLE D’AOSTA":                RegionValleDAosta,
	"PIEDMONT":                     RegionPiemonte,
	"LOMBARDY":                     RegionLombardia,
	"TRENTINO":                     RegionTrentino,
	"ALTO ADIGE":                   RegionTrentino,
	"ALTO-ADIGE":                   RegionTrentino,
	"TRENTINO-ALTO ADIGE":          RegionTrentino,
	"TRENTINO ALTO ADIGE":          RegionTrentino,
	"TRENTINO-ALTO ADIGE/SÜDTIROL": RegionTrentino,
	"ALTO ADIGE/SÜDTIROL":          RegionTrentino,
	"SÜDTIROL":                     RegionTrentino,
	"FRIULI":                       RegionFriuli,
	"FRIULI VENEZIA GIULIA":        RegionFriuli,
	"EMILIA ROMAGNA":               RegionEmilia,
	"TUSCANY":                      RegionToscana,
	"TOSCANA (BOLGHERI)":           RegionToscana,
	"TOSCANA IGT":                  RegionToscana,
	"TARANTO IGT (PUGLIA)":         RegionPuglia,
	"SALENTO IGT (PUGLIA)":         RegionPuglia,
	"SICILY":                       RegionSicilia,
	"SARDINIA":                     RegionSardegna,
}

// regionAliases is the full lookup table: spellings, their diacritic-folded
// forms, and every canonical name mapped to itself so that normalization is
// idempotent.
var regionAliases = buildRegionAliases()

func buildRegionAliases() map[string]string {
	m := make(map[string]string, 2*len(regionSpellings)+len(regionOrder))
	for _, r := range regionOrder {
		m[r] = r
	}
	for k, v := range regionSpellings {
		m[k] = v
	}
	for k, v := range regionSpellings {
		if f := foldDiacritics(k); f != k {
			if _, ok := m[f]; !ok {
				m[f] = v
			}
		}
	}
	return m
}

// NormalizeRegion returns the canonical region name for a raw region string.
// Input is matched case-insensitively; unknown names are returned trimmed and
// uppercased. The empty string maps to itself.
func NormalizeRegion(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}
	if canonical, ok := lookupRegion(key); ok {
		return canonical
	}
	return key
}

// IsKnownRegion reports whether raw is a region spelling on the allow-list.
func IsKnownRegion(raw string) bool {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return false
	}
	_, ok := lookupRegion(key)
	return ok
}

// Regions returns the canonical region names, north to south.
func Regions() []string {
	out := make([]string, len(regionOrder))
	copy(out, regionOrder)
	return out
}

func lookupRegion(key string) (string, bool) {
	if canonical, ok := regionAliases[key]; ok {
		return canonical, true
	}
	canonical, ok := regionAliases[foldDiacritics(key)]
	return canonical, ok
}

// foldDiacritics strips combining marks after NFKD decomposition,
// so "SÜDTIROL" becomes "SUDTIROL".
func foldDiacritics(s string) string {
	s = norm.NFKD.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
}
