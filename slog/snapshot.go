package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/s4ng4/winelist"
)

// Ensure LoggingSnapshotService implements winelist.SnapshotService.
var _ winelist.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with logging of writes.
// Reads are delegated without logging.
type LoggingSnapshotService struct {
	next   winelist.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next winelist.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, snap *winelist.Snapshot, wines []*winelist.Wine) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot create",
			"id", snap.ID,
			"source", snap.Source,
			"wines", len(wines),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, snap, wines)
}

// FindSnapshotByID delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (*winelist.Snapshot, error) {
	return s.next.FindSnapshotByID(ctx, id)
}

// FindSnapshots delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter winelist.SnapshotFilter) ([]*winelist.Snapshot, error) {
	return s.next.FindSnapshots(ctx, filter)
}

// FindSnapshotWines delegates to the wrapped service.
func (s *LoggingSnapshotService) FindSnapshotWines(ctx context.Context, id string) ([]*winelist.Wine, error) {
	return s.next.FindSnapshotWines(ctx, id)
}

// DeleteSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot delete",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
