package winelist

import (
	"fmt"
	"strings"
)

// FormatWine formats a wine as a one-line summary for listings.
// Example: "12  Barolo Riserva 2016 — Cantina Rossi (PIEMONTE, red) 85".
func FormatWine(w *Wine) string {
	var b strings.Builder
	if w.Number != "" {
		b.WriteString(w.Number)
		b.WriteString("  ")
	}
	b.WriteString(w.Name)
	if y := w.Year(); y != NoYear {
		b.WriteString(" ")
		b.WriteString(y)
	}
	b.WriteString(" — ")
	b.WriteString(w.Producer)
	fmt.Fprintf(&b, " (%s, %s)", w.NormalizedRegion(), w.Family())
	if p := w.DisplayPrice(); p != "" {
		b.WriteString(" ")
		b.WriteString(p)
	}
	return b.String()
}

// FormatWineDetails formats every populated field of a wine, one per line,
// for the wine details view.
func FormatWineDetails(w *Wine) string {
	fields := []struct{ label, value string }{
		{"Number", w.Number},
		{"Name", w.Name},
		{"Producer", w.Producer},
		{"Region", w.NormalizedRegion()},
		{"Family", string(w.Family())},
		{"Type", w.Type},
		{"Varietals", w.Varietals},
		{"Vintage", w.Year()},
		{"Alcohol", w.Alcohol},
		{"Aging", w.Aging},
		{"Soil", w.Soil},
		{"Elevation", w.Elevation},
		{"Organic", w.Organic.String()},
		{"Price (glass)", w.PriceGlass},
		{"Price (bottle)", w.PriceBottle},
		{"Price", w.Price},
		{"Description", w.Description},
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-15s %s", f.label+":", f.value))
	}
	return strings.Join(lines, "\n")
}
