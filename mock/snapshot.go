package mock

import (
	"context"

	"github.com/s4ng4/winelist"
)

var _ winelist.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of winelist.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn    func(ctx context.Context, snap *winelist.Snapshot, wines []*winelist.Wine) error
	FindSnapshotByIDFn  func(ctx context.Context, id string) (*winelist.Snapshot, error)
	FindSnapshotsFn     func(ctx context.Context, filter winelist.SnapshotFilter) ([]*winelist.Snapshot, error)
	FindSnapshotWinesFn func(ctx context.Context, id string) ([]*winelist.Wine, error)
	DeleteSnapshotFn    func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *winelist.Snapshot, wines []*winelist.Wine) error {
	return s.CreateSnapshotFn(ctx, snap, wines)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*winelist.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter winelist.SnapshotFilter) ([]*winelist.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) FindSnapshotWines(ctx context.Context, id string) ([]*winelist.Wine, error) {
	return s.FindSnapshotWinesFn(ctx, id)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
