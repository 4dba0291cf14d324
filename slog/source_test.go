package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/mock"
	wlslog "github.com/s4ng4/winelist/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSource_LoadRawWines(t *testing.T) {
	t.Parallel()

	t.Run("logs load with source, count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogSource{
			LoadRawWinesFn: func(context.Context) ([]winelist.RawWine, error) {
				return []winelist.RawWine{{"wine_name": "Soave"}, {"wine_name": "Gavi"}}, nil
			},
		}

		src := wlslog.NewLoggingSource(inner, "wines.json", logger)
		raws, err := src.LoadRawWines(context.Background())

		require.NoError(t, err)
		assert.Len(t, raws, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "catalog load")
		assert.Contains(t, output, "source=wines.json")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CatalogSource{
			LoadRawWinesFn: func(context.Context) ([]winelist.RawWine, error) {
				return nil, errors.New("file not found")
			},
		}

		src := wlslog.NewLoggingSource(inner, "wines.json", logger)
		_, err := src.LoadRawWines(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=\"file not found\"")
	})
}
