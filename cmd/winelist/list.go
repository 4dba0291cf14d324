package main

import (
	"fmt"
	"sort"

	"github.com/s4ng4/winelist"
)

// loadCatalog loads the selected catalog, reporting failures on stderr.
func loadCatalog(deps *Dependencies) (*winelist.Catalog, error) {
	c, err := winelist.LoadCatalog(deps.Ctx, deps.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return nil, err
	}
	return c, nil
}

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := winelist.WineFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Family != "" {
		family, err := winelist.ParseFamily(c.Family)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
			return err
		}
		filter.Family = &family
	}
	if c.Region != "" {
		filter.Region = &c.Region
	}
	if c.Varietal != "" {
		filter.Varietal = &c.Varietal
	}
	if c.Query != "" {
		filter.Search = &c.Query
	}

	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	wines := filter.Apply(catalog.Wines())
	if len(wines) == 0 {
		fmt.Fprintln(deps.Stdout, "No wines found.")
		return nil
	}
	for _, w := range wines {
		fmt.Fprintln(deps.Stdout, winelist.FormatWine(w))
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	w, err := winelist.FindByNumber(catalog.Wines(), c.Number)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'winelist list' to see available wines.\n", winelist.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, winelist.FormatWineDetails(w))
	return nil
}

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	suggestions := winelist.Suggest(catalog.Wines(), c.Term, c.Limit)
	if len(suggestions) == 0 {
		fmt.Fprintln(deps.Stdout, "No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		switch s.Kind {
		case winelist.SuggestRegion:
			fmt.Fprintf(deps.Stdout, "region  %s\n", s.Label)
		default:
			fmt.Fprintf(deps.Stdout, "wine    %s  %s\n", s.Number, s.Label)
		}
	}
	return nil
}

// Run executes the regions command.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	regions := catalog.Regions()
	if len(regions) == 0 {
		fmt.Fprintln(deps.Stdout, "No regions found.")
		return nil
	}
	counts := catalog.Report().Regions
	for _, r := range regions {
		fmt.Fprintf(deps.Stdout, "%-24s %d\n", r, counts[r])
	}
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	report := catalog.Report()
	fmt.Fprintf(deps.Stdout, "Records:  %d\n", report.Total)
	fmt.Fprintf(deps.Stdout, "Admitted: %d\n", report.Admitted)
	fmt.Fprintf(deps.Stdout, "Rejected: %d\n", report.Total-report.Admitted)

	reasons := make([]string, 0, len(report.Rejected))
	for reason := range report.Rejected {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(deps.Stdout, "  %-24s %d\n", reason, report.Rejected[reason])
	}

	fmt.Fprintln(deps.Stdout, "Families:")
	for _, f := range winelist.Families() {
		if n := report.Families[f]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  %-24s %d\n", f, n)
		}
	}

	if len(report.DuplicateNumbers) > 0 {
		fmt.Fprintf(deps.Stdout, "Duplicate numbers: %v\n", report.DuplicateNumbers)
	}
	if len(report.SuspiciousRegions) > 0 {
		fmt.Fprintf(deps.Stdout, "Unknown regions: %v\n", report.SuspiciousRegions)
	}
	return nil
}
