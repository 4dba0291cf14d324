package winelist

import "strings"

// Family is the broad style a wine is listed under.
type Family string

// Family constants.
const (
	FamilyRed          Family = "red"
	FamilyWhite        Family = "white"
	FamilyRose         Family = "rose"
	FamilyOrange       Family = "orange"
	FamilySparkling    Family = "sparkling"
	FamilyNonAlcoholic Family = "non-alcoholic"
)

// Families returns every family in menu order.
func Families() []Family {
	return []Family{
		FamilySparkling,
		FamilyWhite,
		FamilyRose,
		FamilyOrange,
		FamilyRed,
		FamilyNonAlcoholic,
	}
}

// familyRule maps type-label keywords to a family.
type familyRule struct {
	family   Family
	keywords []string
}

// familyRules is evaluated in order and the first match wins. Sparkling and
// non-alcoholic labels often also carry a colour ("BOLLICINE ROSATO",
// "ROSSO 0.0"), so they are checked before the colour keywords.
var familyRules = []familyRule{
	{FamilySparkling, []string{"BOLLICINE"}},
	{FamilyNonAlcoholic, []string{"NON ALCOLICO", "NON-ALCOHOLIC", "0.0"}},
	{FamilyRose, []string{"ROSATO"}},
	{FamilyOrange, []string{"ARANCIONE"}},
	{FamilyWhite, []string{"BIANCO"}},
	{FamilyRed, []string{"ROSSO", "AMARONE", "BAROLO", "SUPERTUSCAN", "SUPERIORE", "RIPASSO"}},
}

// Classify returns the family for a wine type label.
// Labels that match no rule, including the empty label, are red.
func Classify(typeText string) Family {
	upper := strings.ToUpper(typeText)
	if strings.TrimSpace(upper) == "" {
		return FamilyRed
	}
	for _, rule := range familyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.family
			}
		}
	}
	return FamilyRed
}

// familyNames accepts the family values plus the Italian menu headings.
var familyNames = map[string]Family{
	"red":           FamilyRed,
	"rosso":         FamilyRed,
	"rossi":         FamilyRed,
	"white":         FamilyWhite,
	"bianco":        FamilyWhite,
	"bianchi":       FamilyWhite,
	"rose":          FamilyRose,
	"rosé":          FamilyRose,
	"rosato":        FamilyRose,
	"rosati":        FamilyRose,
	"orange":        FamilyOrange,
	"arancione":     FamilyOrange,
	"sparkling":     FamilySparkling,
	"bollicine":     FamilySparkling,
	"non-alcoholic": FamilyNonAlcoholic,
	"non alcoholic": FamilyNonAlcoholic,
	"non alcolico":  FamilyNonAlcoholic,
	"analcolico":    FamilyNonAlcoholic,
}

// ParseFamily parses a family name. Returns EINVALID for unknown names.
func ParseFamily(s string) (Family, error) {
	if f, ok := familyNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown wine family %q", s)
}
