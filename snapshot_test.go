package winelist_test

import (
	"context"
	"testing"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&winelist.Snapshot{Source: "wines.json"}).Validate())

	err := (&winelist.Snapshot{}).Validate()
	require.Error(t, err)
	assert.Equal(t, winelist.EINVALID, winelist.ErrorCode(err))
}

func TestResolveSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("finds snapshot by ID", func(t *testing.T) {
		t.Parallel()

		svc := &mock.SnapshotService{
			FindSnapshotByIDFn: func(_ context.Context, id string) (*winelist.Snapshot, error) {
				return &winelist.Snapshot{ID: id}, nil
			},
		}

		snap, err := winelist.ResolveSnapshot(context.Background(), svc, "snap-1")

		require.NoError(t, err)
		assert.Equal(t, "snap-1", snap.ID)
	})

	t.Run("resolves latest to the newest snapshot", func(t *testing.T) {
		t.Parallel()

		var gotFilter winelist.SnapshotFilter
		svc := &mock.SnapshotService{
			FindSnapshotsFn: func(_ context.Context, filter winelist.SnapshotFilter) ([]*winelist.Snapshot, error) {
				gotFilter = filter
				return []*winelist.Snapshot{{ID: "newest"}}, nil
			},
		}

		snap, err := winelist.ResolveSnapshot(context.Background(), svc, winelist.LatestSnapshot)

		require.NoError(t, err)
		assert.Equal(t, "newest", snap.ID)
		assert.Equal(t, 1, gotFilter.Limit)
	})

	t.Run("returns ENOTFOUND when there are no snapshots", func(t *testing.T) {
		t.Parallel()

		svc := &mock.SnapshotService{
			FindSnapshotsFn: func(context.Context, winelist.SnapshotFilter) ([]*winelist.Snapshot, error) {
				return nil, nil
			},
		}

		_, err := winelist.ResolveSnapshot(context.Background(), svc, winelist.LatestSnapshot)

		require.Error(t, err)
		assert.Equal(t, winelist.ENOTFOUND, winelist.ErrorCode(err))
	})
}

func TestSnapshotSource_LoadRawWines(t *testing.T) {
	t.Parallel()

	t.Run("replays the stored wines of the snapshot", func(t *testing.T) {
		t.Parallel()

		stored := []*winelist.Wine{
			{Number: "1", Name: "Barolo", Producer: "Vietti", Region: "PIEMONTE", Type: "ROSSO", Price: "80"},
			{Number: "2", Name: "Soave", Producer: "Pieropan", Region: "VENETO", Type: "BIANCO", Price: "30"},
		}
		svc := &mock.SnapshotService{
			FindSnapshotByIDFn: func(_ context.Context, id string) (*winelist.Snapshot, error) {
				return &winelist.Snapshot{ID: id}, nil
			},
			FindSnapshotWinesFn: func(_ context.Context, id string) ([]*winelist.Wine, error) {
				assert.Equal(t, "snap-1", id)
				return stored, nil
			},
		}

		c, err := winelist.LoadCatalog(context.Background(), winelist.NewSnapshotSource(svc, "snap-1"))

		require.NoError(t, err)
		assert.Equal(t, stored, c.Wines())
	})

	t.Run("returns ENOTFOUND for a missing snapshot", func(t *testing.T) {
		t.Parallel()

		svc := &mock.SnapshotService{
			FindSnapshotByIDFn: func(context.Context, string) (*winelist.Snapshot, error) {
				return nil, winelist.Errorf(winelist.ENOTFOUND, "snapshot not found")
			},
		}

		_, err := winelist.NewSnapshotSource(svc, "missing").LoadRawWines(context.Background())

		require.Error(t, err)
		assert.Equal(t, winelist.ENOTFOUND, winelist.ErrorCode(err))
	})
}
