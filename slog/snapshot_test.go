package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/mock"
	wlslog "github.com/s4ng4/winelist/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSnapshotService(t *testing.T) {
	t.Parallel()

	t.Run("logs snapshot creation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotService{
			CreateSnapshotFn: func(_ context.Context, snap *winelist.Snapshot, _ []*winelist.Wine) error {
				snap.ID = "snap-1"
				return nil
			},
		}

		svc := wlslog.NewLoggingSnapshotService(inner, logger)
		snap := &winelist.Snapshot{Source: "wines.json"}
		err := svc.CreateSnapshot(context.Background(), snap, []*winelist.Wine{{Name: "Soave"}})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "snapshot create")
		assert.Contains(t, output, "id=snap-1")
		assert.Contains(t, output, "wines=1")
	})

	t.Run("logs snapshot deletion", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotService{
			DeleteSnapshotFn: func(context.Context, string) error { return nil },
		}

		svc := wlslog.NewLoggingSnapshotService(inner, logger)

		require.NoError(t, svc.DeleteSnapshot(context.Background(), "snap-1"))
		assert.Contains(t, buf.String(), "snapshot delete")
	})

	t.Run("delegates reads without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SnapshotService{
			FindSnapshotByIDFn: func(_ context.Context, id string) (*winelist.Snapshot, error) {
				return &winelist.Snapshot{ID: id}, nil
			},
		}

		svc := wlslog.NewLoggingSnapshotService(inner, logger)
		snap, err := svc.FindSnapshotByID(context.Background(), "snap-1")

		require.NoError(t, err)
		assert.Equal(t, "snap-1", snap.ID)
		assert.Empty(t, buf.String())
	})
}
