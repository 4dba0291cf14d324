package winelist

import (
	"regexp"
	"strconv"
	"strings"
)

// RawWine is one loosely-typed record as decoded from the catalog JSON.
type RawWine map[string]any

// Organic is a tri-state organic certification flag.
type Organic int

// Organic values.
const (
	OrganicUnknown Organic = iota
	OrganicYes
	OrganicNo
)

// String returns "yes", "no" or "unknown".
func (o Organic) String() string {
	switch o {
	case OrganicYes:
		return "yes"
	case OrganicNo:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the flag as true, false or null.
func (o Organic) MarshalJSON() ([]byte, error) {
	switch o {
	case OrganicYes:
		return []byte("true"), nil
	case OrganicNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false or null.
func (o *Organic) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*o = OrganicYes
	case "false":
		*o = OrganicNo
	case "null":
		*o = OrganicUnknown
	default:
		return Errorf(EINVALID, "invalid organic flag %s", data)
	}
	return nil
}

// Wine represents one entry on the wine list.
type Wine struct {
	Number      string  `json:"number"`
	Name        string  `json:"name"`
	Producer    string  `json:"producer"`
	Region      string  `json:"region"`
	Varietals   string  `json:"varietals"`
	Vintage     string  `json:"vintage"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Alcohol     string  `json:"alcohol"`
	Aging       string  `json:"aging"`
	Soil        string  `json:"soil"`
	Elevation   string  `json:"elevation"`
	Organic     Organic `json:"organic"`
	PriceGlass  string  `json:"priceGlass"`
	PriceBottle string  `json:"priceBottle"`
	Price       string  `json:"price"`
}

// Raw keys accepted for each field, in lookup order.
var (
	keysNumber      = []string{"wine_number", "number", "id"}
	keysName        = []string{"wine_name", "name"}
	keysProducer    = []string{"wine_producer", "producer"}
	keysRegion      = []string{"region", "wine_region"}
	keysVarietals   = []string{"varietals", "wine_varietals", "grapes"}
	keysVintage     = []string{"wine_vintage", "vintage"}
	keysType        = []string{"wine_type", "type"}
	keysDescription = []string{"wine_description", "description"}
	keysAlcohol     = []string{"alcohol", "wine_alcohol"}
	keysAging       = []string{"aging", "wine_aging"}
	keysSoil        = []string{"soil", "wine_soil"}
	keysElevation   = []string{"elevation", "wine_elevation"}
	keysOrganic     = []string{"organic", "wine_organic"}
	keysPriceGlass  = []string{"wine_price_glass", "price_glass"}
	keysPriceBottle = []string{"wine_price_bottle", "price_bottle"}
	keysPrice       = []string{"wine_price", "price"}
)

// ParseWine converts a raw record into a Wine. It never fails: missing or
// oddly-typed values become empty strings. Use Validate to check admission.
func ParseWine(raw RawWine) *Wine {
	return &Wine{
		Number:      raw.field(keysNumber),
		Name:        raw.field(keysName),
		Producer:    raw.field(keysProducer),
		Region:      raw.field(keysRegion),
		Varietals:   raw.field(keysVarietals),
		Vintage:     raw.field(keysVintage),
		Type:        raw.field(keysType),
		Description: raw.field(keysDescription),
		Alcohol:     raw.field(keysAlcohol),
		Aging:       raw.field(keysAging),
		Soil:        raw.field(keysSoil),
		Elevation:   raw.field(keysElevation),
		Organic:     parseOrganic(raw.value(keysOrganic)),
		PriceGlass:  raw.field(keysPriceGlass),
		PriceBottle: raw.field(keysPriceBottle),
		Price:       raw.field(keysPrice),
	}
}

// Raw returns the wine as a raw record using the primary key of each field.
// ParseWine(w.Raw()) reproduces w.
func (w *Wine) Raw() RawWine {
	raw := RawWine{
		keysNumber[0]:      w.Number,
		keysName[0]:        w.Name,
		keysProducer[0]:    w.Producer,
		keysRegion[0]:      w.Region,
		keysVarietals[0]:   w.Varietals,
		keysVintage[0]:     w.Vintage,
		keysType[0]:        w.Type,
		keysDescription[0]: w.Description,
		keysAlcohol[0]:     w.Alcohol,
		keysAging[0]:       w.Aging,
		keysSoil[0]:        w.Soil,
		keysElevation[0]:   w.Elevation,
		keysPriceGlass[0]:  w.PriceGlass,
		keysPriceBottle[0]: w.PriceBottle,
		keysPrice[0]:       w.Price,
	}
	switch w.Organic {
	case OrganicYes:
		raw[keysOrganic[0]] = true
	case OrganicNo:
		raw[keysOrganic[0]] = false
	}
	return raw
}

// value returns the first non-nil value stored under one of keys.
func (r RawWine) value(keys []string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// field returns the first non-empty value under keys, coerced to a trimmed string.
func (r RawWine) field(keys []string) string {
	for _, k := range keys {
		if s := stringify(r[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func parseOrganic(v any) Organic {
	switch v := v.(type) {
	case bool:
		if v {
			return OrganicYes
		}
		return OrganicNo
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "si", "sì", "y", "1", "bio", "organic":
			return OrganicYes
		case "false", "no", "n", "0":
			return OrganicNo
		}
	case float64:
		if v == 1 {
			return OrganicYes
		}
		if v == 0 {
			return OrganicNo
		}
	}
	return OrganicUnknown
}

// Placeholder values left behind by the spreadsheet template the list is
// exported from.
var (
	namePlaceholders     = []string{"WINE NAME", "WINE PRICE", "VINTAGE"}
	producerPlaceholders = []string{"UNKNOWN PRODUCER"}
	excludedTypes        = []string{"SANGRIA", "COCKTAIL"}
)

// Validate returns an EINVALID error if the wine may not appear on the list.
func (w *Wine) Validate() error {
	if w.Region == "" {
		return Errorf(EINVALID, "wine region required")
	}
	if !IsKnownRegion(w.Region) {
		return Errorf(EINVALID, "unknown wine region")
	}
	if w.Name == "" || isPlaceholder(w.Name, namePlaceholders) {
		return Errorf(EINVALID, "wine name required")
	}
	if w.Producer == "" || isPlaceholder(w.Producer, producerPlaceholders) {
		return Errorf(EINVALID, "wine producer required")
	}
	if w.DisplayPrice() == "" {
		return Errorf(EINVALID, "wine price required")
	}
	upperType := strings.ToUpper(w.Type)
	for _, t := range excludedTypes {
		if strings.Contains(upperType, t) {
			return Errorf(EINVALID, "wine type excluded")
		}
	}
	return nil
}

func isPlaceholder(s string, placeholders []string) bool {
	s = strings.TrimSpace(s)
	for _, p := range placeholders {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// NormalizedRegion returns the canonical region of the wine.
func (w *Wine) NormalizedRegion() string {
	return NormalizeRegion(w.Region)
}

// Family returns the family the wine is listed under.
func (w *Wine) Family() Family {
	return Classify(w.Type)
}

// Year returns the vintage year, or "N/A".
func (w *Wine) Year() string {
	return ExtractYear(w.Vintage)
}

// DisplayPrice returns the first usable price among glass, bottle and list
// price. Returns an empty string when the wine has no usable price.
func (w *Wine) DisplayPrice() string {
	for _, p := range []string{w.PriceGlass, w.PriceBottle, w.Price} {
		if p != "" && p != "0" {
			return p
		}
	}
	return ""
}

// NoYear is returned by ExtractYear when the vintage carries no year.
const NoYear = "N/A"

var yearRE = regexp.MustCompile(`(19|20)\d{2}`)

// ExtractYear returns the first four-digit year (1900-2099) found in a
// vintage label, or NoYear.
func ExtractYear(vintage string) string {
	if y := yearRE.FindString(vintage); y != "" {
		return y
	}
	return NoYear
}
