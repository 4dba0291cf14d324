package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/bleve"
	"github.com/s4ng4/winelist/fs"
	wlhttp "github.com/s4ng4/winelist/http"
	"golang.org/x/sync/errgroup"
)

// indexGracePeriod is how long a replaced index stays open for in-flight
// searches.
const indexGracePeriod = wlhttp.DefaultShutdownTimeout

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}

	server := wlhttp.NewServer(
		wlhttp.WithLogger(deps.Logger),
		wlhttp.WithStaticDir(c.Static),
		wlhttp.WithBaseURL(c.BaseURL),
		wlhttp.WithRateLimit(c.RateLimit, c.Burst),
		wlhttp.WithTrustProxy(c.TrustProxy),
	)

	p := &publisher{server: server, logger: deps.Logger, noSearch: c.NoSearch}
	if err := p.publish(catalog); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}
	defer p.close()

	report := catalog.Report()
	deps.Logger.Info("catalog loaded",
		"source", deps.SourceName,
		"admitted", report.Admitted,
		"total", report.Total,
	)

	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return server.Run(ctx, addr)
	})

	if c.Watch {
		if deps.CatalogPath == "" {
			deps.Logger.Warn("watch ignored: catalog is not a local file", "source", deps.SourceName)
		} else {
			watcher := fs.NewWatcher(deps.CatalogPath, deps.Logger)
			g.Go(func() error {
				return watcher.Watch(ctx, func(ctx context.Context) {
					p.reload(ctx, deps.Source)
				})
			})
		}
	}

	if err := g.Wait(); err != nil {
		if wlhttp.IsAddrInUse(err) {
			fmt.Fprintf(deps.Stderr, "error: port %d is already in use. Use --port to pick another.\n", c.Port)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}

// publisher swaps the catalog and search index served by a Server.
type publisher struct {
	server   *wlhttp.Server
	logger   *slog.Logger
	noSearch bool

	mu    sync.Mutex
	index *bleve.Index
}

// publish builds the search index for c and serves both. The index being
// replaced is closed once in-flight searches have had time to finish.
func (p *publisher) publish(c *winelist.Catalog) error {
	var (
		index    *bleve.Index
		searcher winelist.Searcher
	)
	if !p.noSearch {
		var err error
		if index, err = bleve.NewIndex(c); err != nil {
			return err
		}
		searcher = index
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.server.SetCatalog(c, searcher)
	if old := p.index; old != nil {
		time.AfterFunc(indexGracePeriod, func() { _ = old.Close() })
	}
	p.index = index
	return nil
}

// reload loads src again and publishes it. On failure the current catalog
// stays in service.
func (p *publisher) reload(ctx context.Context, src winelist.CatalogSource) {
	c, err := winelist.LoadCatalog(ctx, src)
	if err != nil {
		p.logger.Error("catalog reload failed", "err", err)
		return
	}
	if err := p.publish(c); err != nil {
		p.logger.Error("catalog reload failed", "err", err)
		return
	}
	p.logger.Info("catalog reloaded", "admitted", c.Len())
}

func (p *publisher) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index != nil {
		_ = p.index.Close()
		p.index = nil
	}
}
