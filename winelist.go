// Package winelist provides the catalog index behind a restaurant wine list.
// It ingests a loosely-typed JSON dataset of wines, admits only well-formed
// entries, and exposes pure query functions (by family, region, varietal,
// free text and id) to the CLI and HTTP presentation layers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, bleve/, http/).
package winelist
