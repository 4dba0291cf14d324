package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_LoadRawWines(t *testing.T) {
	t.Parallel()

	t.Run("reads records from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wines.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"wines": [{"wine_number": 42, "wine_name": "Barolo"}]}`), 0644))

		raws, err := fs.NewSource(path).LoadRawWines(context.Background())
		require.NoError(t, err)
		require.Len(t, raws, 1)
		assert.Equal(t, "Barolo", raws[0]["wine_name"])
	})

	t.Run("returns EINVALID for non-JSON file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wines.json")
		require.NoError(t, os.WriteFile(path, []byte("wine_number,wine_name\n1,Barolo\n"), 0644))

		_, err := fs.NewSource(path).LoadRawWines(context.Background())
		require.Error(t, err)
		assert.Equal(t, winelist.EINVALID, winelist.ErrorCode(err))
	})

	t.Run("missing file is EUNAVAILABLE through LoadCatalog", func(t *testing.T) {
		t.Parallel()

		src := fs.NewSource(filepath.Join(t.TempDir(), "missing.json"))
		_, err := winelist.LoadCatalog(context.Background(), src)
		require.Error(t, err)
		assert.Equal(t, winelist.EUNAVAILABLE, winelist.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewSource("wines.json").LoadRawWines(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
