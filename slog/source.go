// Package slog provides logging decorators for winelist services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/s4ng4/winelist"
)

// Ensure LoggingSource implements winelist.CatalogSource.
var _ winelist.CatalogSource = (*LoggingSource)(nil)

// LoggingSource wraps a CatalogSource with logging.
type LoggingSource struct {
	next   winelist.CatalogSource
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. name identifies the source
// in log lines, typically its path or URL.
func NewLoggingSource(next winelist.CatalogSource, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// LoadRawWines delegates to the wrapped source and logs the operation.
func (s *LoggingSource) LoadRawWines(ctx context.Context) (raws []winelist.RawWine, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "catalog load",
			"source", s.name,
			"count", len(raws),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadRawWines(ctx)
}
