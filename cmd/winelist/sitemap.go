package main

import (
	"fmt"
	"io"
	"os"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/fs"
	wlhttp "github.com/s4ng4/winelist/http"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	var w io.Writer = deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	if err := wlhttp.WriteSitemap(w, c.BaseURL, catalog); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stdout, "Wrote %d URLs to %s\n", len(wlhttp.SitemapURLs(c.BaseURL, catalog)), c.Output)
	}
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	if err := fs.WriteCatalog(c.Path, catalog.Wines()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d wines to %s\n", catalog.Len(), c.Path)
	return nil
}
