package winelist

import (
	"context"
	"time"
)

// Snapshot is a stored copy of an admitted catalog.
type Snapshot struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	Total       int       `json:"total"`
	Admitted    int       `json:"admitted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Source == "" {
		return Errorf(EINVALID, "snapshot source required")
	}
	return nil
}

// SnapshotService represents a service for managing catalog snapshots.
type SnapshotService interface {
	// CreateSnapshot stores wines, in order, under a new snapshot.
	// ID, ContentHash, Admitted and CreatedAt are set on snap.
	CreateSnapshot(ctx context.Context, snap *Snapshot, wines []*Wine) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// FindSnapshotWines retrieves the wines of a snapshot in stored order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotWines(ctx context.Context, id string) ([]*Wine, error)

	// DeleteSnapshot permanently removes a snapshot and its wines.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID          *string `json:"id"`
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LatestSnapshot is the snapshot reference that resolves to the newest snapshot.
const LatestSnapshot = "latest"

// ResolveSnapshot returns the snapshot for ref, which is a snapshot ID or
// LatestSnapshot. Returns ENOTFOUND if there is no such snapshot.
func ResolveSnapshot(ctx context.Context, svc SnapshotService, ref string) (*Snapshot, error) {
	if ref != LatestSnapshot {
		return svc.FindSnapshotByID(ctx, ref)
	}
	snaps, err := svc.FindSnapshots(ctx, SnapshotFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, Errorf(ENOTFOUND, "no snapshots found")
	}
	return snaps[0], nil
}

// SnapshotSource is a CatalogSource that replays a stored snapshot.
type SnapshotSource struct {
	Snapshots SnapshotService
	Ref       string // snapshot ID or LatestSnapshot
}

// NewSnapshotSource returns a source reading the snapshot identified by ref.
func NewSnapshotSource(svc SnapshotService, ref string) *SnapshotSource {
	return &SnapshotSource{Snapshots: svc, Ref: ref}
}

// LoadRawWines returns the stored wines of the snapshot as raw records.
func (s *SnapshotSource) LoadRawWines(ctx context.Context) ([]RawWine, error) {
	snap, err := ResolveSnapshot(ctx, s.Snapshots, s.Ref)
	if err != nil {
		return nil, err
	}
	wines, err := s.Snapshots.FindSnapshotWines(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	raws := make([]RawWine, len(wines))
	for i, w := range wines {
		raws[i] = w.Raw()
	}
	return raws, nil
}
