package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/s4ng4/winelist"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Source is the catalog selected by --catalog or --snapshot, and
	// SourceName the reference it was opened from.
	Source     winelist.CatalogSource
	SourceName string

	// CatalogPath is the local catalog file, empty for URLs and snapshots.
	CatalogPath string

	// Snapshots is nil unless the command needs the database.
	Snapshots winelist.SnapshotService

	// OpenSource returns a source for a catalog file path or URL.
	OpenSource func(ref string) winelist.CatalogSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Catalog   string `short:"c" default:"wines.json" env:"WINELIST_CATALOG" help:"Catalog file path or http(s) URL"`
	Snapshot  string `short:"s" env:"WINELIST_SNAPSHOT" help:"Read the catalog from a stored snapshot (ID or 'latest')"`
	DB        string `env:"WINELIST_DB" help:"Snapshot database path"`
	LogLevel  string `env:"WINELIST_LOG_LEVEL" help:"Log level: debug, info, warn or error (default info for serve, warn otherwise)"`
	LogFormat string `enum:"text,json" default:"text" help:"Log format: text or json"`

	Serve     ServeCmd     `cmd:"" help:"Serve the wine list API and static site"`
	List      ListCmd      `cmd:"" help:"List wines"`
	Show      ShowCmd      `cmd:"" help:"Show the details of a wine"`
	Suggest   SuggestCmd   `cmd:"" help:"Show autocomplete suggestions for a term"`
	Search    SearchCmd    `cmd:"" help:"Ranked full-text search"`
	Regions   RegionsCmd   `cmd:"" help:"List regions with wine counts"`
	Stats     StatsCmd     `cmd:"" help:"Show ingestion statistics"`
	Import    ImportCmd    `cmd:"" help:"Store the catalog as a snapshot"`
	Snapshots SnapshotsCmd `cmd:"" help:"List stored snapshots"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a stored snapshot"`
	Sitemap   SitemapCmd   `cmd:"" help:"Write the sitemap for the catalog"`
	Export    ExportCmd    `cmd:"" help:"Write the admitted wines as a catalog file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host       string  `default:"" help:"Interface to listen on"`
	Port       int     `short:"p" default:"8000" env:"WINELIST_PORT" help:"Port to listen on"`
	Static     string  `default:"." help:"Directory of static pages to serve (empty to disable)"`
	BaseURL    string  `name:"base-url" help:"Public base URL used in the sitemap"`
	Watch      bool    `short:"w" help:"Reload the catalog when the file changes"`
	RateLimit  float64 `name:"rate-limit" default:"20" help:"API requests per second per client (0 disables)"`
	Burst      int     `default:"40" help:"API request burst per client"`
	NoSearch   bool    `name:"no-search" help:"Disable the full-text index and use substring search"`
	TrustProxy bool    `name:"trust-proxy" env:"WINELIST_TRUST_PROXY" help:"Take client addresses from X-Forwarded-For (only behind a reverse proxy)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Family   string `short:"f" help:"Only wines of this family (red, white, rose, orange, sparkling, non-alcoholic)"`
	Region   string `short:"r" help:"Only wines from this region"`
	Varietal string `short:"v" help:"Only wines whose varietals contain this text"`
	Query    string `short:"q" name:"q" help:"Only wines matching this text"`
	Offset   int    `help:"Skip this many wines"`
	Limit    int    `short:"n" help:"Show at most this many wines"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Number string `arg:"" help:"Wine number"`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Term  string `arg:"" help:"Search term"`
	Limit int    `short:"n" default:"10" help:"Maximum number of suggestions"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Term  string `arg:"" help:"Search term"`
	Limit int    `short:"n" default:"20" help:"Maximum number of results"`
}

// RegionsCmd is the "regions" subcommand.
type RegionsCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Force bool `short:"f" help:"Store a snapshot even if an identical one exists"`
}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct {
	Limit int `short:"n" help:"Show at most this many snapshots"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Snapshot ID"`
	Force bool   `help:"Confirm deletion"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	BaseURL string `name:"base-url" default:"http://localhost:8000" help:"Public base URL of the site"`
	Output  string `short:"o" help:"Write to this file instead of stdout"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" help:"Output file"`
}
