package main

import (
	"fmt"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/bleve"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	index, err := bleve.NewIndex(catalog)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}
	defer index.Close()

	wines, err := index.SearchWines(deps.Ctx, c.Term, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}

	if len(wines) == 0 {
		fmt.Fprintln(deps.Stdout, "No wines found.")
		return nil
	}
	for _, w := range wines {
		fmt.Fprintln(deps.Stdout, winelist.FormatWine(w))
	}
	return nil
}
