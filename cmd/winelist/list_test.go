package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/s4ng4/winelist"
	main "github.com/s4ng4/winelist/cmd/winelist"
	"github.com/s4ng4/winelist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRaws() []winelist.RawWine {
	return []winelist.RawWine{
		{"wine_number": float64(1), "wine_name": "Barolo Castiglione", "wine_producer": "Vietti", "region": "Piemonte", "wine_type": "ROSSO", "varietals": "Nebbiolo", "wine_vintage": "2018", "wine_price_bottle": "85"},
		{"wine_number": float64(2), "wine_name": "Soave Classico", "wine_producer": "Pieropan", "region": "VENETO", "wine_type": "BIANCO", "varietals": "Garganega", "wine_price_glass": "12"},
		{"wine_number": float64(3), "wine_name": "Etna Rosso", "wine_producer": "Benanti", "region": "Sicily", "wine_type": "ROSSO", "varietals": "Nerello Mascalese", "wine_price": 48},
		{"wine_number": float64(4), "wine_name": "WINE NAME", "wine_producer": "Nobody", "region": "TOSCANA", "wine_price": "10"},
	}
}

func testSource() *mock.CatalogSource {
	return &mock.CatalogSource{
		LoadRawWinesFn: func(_ context.Context) ([]winelist.RawWine, error) {
			return testRaws(), nil
		},
	}
}

func newDeps(src winelist.CatalogSource) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     slog.New(slog.DiscardHandler),
		Source:     src,
		SourceName: "wines.json",
	}, stdout, stderr
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists admitted wines in catalog order", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		lines := bytes.Split(bytes.TrimSpace(stdout.Bytes()), []byte("\n"))
		require.Len(t, lines, 3)
		assert.Contains(t, string(lines[0]), "Barolo Castiglione")
		assert.Contains(t, string(lines[1]), "Soave Classico")
		assert.Contains(t, string(lines[2]), "Etna Rosso")
		assert.NotContains(t, stdout.String(), "WINE NAME")
	})

	t.Run("filters by family", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ListCmd{Family: "bianco"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Soave Classico")
		assert.NotContains(t, stdout.String(), "Barolo")
	})

	t.Run("filters by region alias", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ListCmd{Region: "sicilia"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Etna Rosso")
		assert.NotContains(t, stdout.String(), "Soave")
	})

	t.Run("applies offset and limit", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ListCmd{Offset: 1, Limit: 1}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, bytes.Count(stdout.Bytes(), []byte("\n")))
		assert.Contains(t, stdout.String(), "Soave Classico")
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ListCmd{Query: "zinfandel"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No wines found.")
	})

	t.Run("rejects unknown family", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(testSource())
		err := (&main.ListCmd{Family: "blue"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, winelist.EINVALID, winelist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports unavailable catalog", func(t *testing.T) {
		t.Parallel()

		src := &mock.CatalogSource{
			LoadRawWinesFn: func(_ context.Context) ([]winelist.RawWine, error) {
				return nil, errors.New("connection refused")
			},
		}
		deps, _, stderr := newDeps(src)
		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, winelist.EUNAVAILABLE, winelist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "catalog unavailable")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows wine details", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.ShowCmd{Number: "1"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Vietti")
		assert.Contains(t, stdout.String(), "PIEMONTE")
		assert.Contains(t, stdout.String(), "2018")
	})

	t.Run("returns not found for unknown number", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(testSource())
		err := (&main.ShowCmd{Number: "99"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, winelist.ENOTFOUND, winelist.ErrorCode(err))
		assert.Contains(t, stderr.String(), "winelist list")
	})
}

func TestSuggestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists regions before wines", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.SuggestCmd{Term: "ve", Limit: 10}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "region  VENETO")
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("region")), bytes.Index(stdout.Bytes(), []byte("wine ")))
	})

	t.Run("short terms yield nothing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(testSource())
		err := (&main.SuggestCmd{Term: "v", Limit: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No suggestions.")
	})
}

func TestRegionsCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(testSource())
	err := (&main.RegionsCmd{}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	piemonte := bytes.Index(stdout.Bytes(), []byte("PIEMONTE"))
	veneto := bytes.Index(stdout.Bytes(), []byte("VENETO"))
	sicilia := bytes.Index(stdout.Bytes(), []byte("SICILIA"))
	assert.True(t, piemonte >= 0 && piemonte < veneto && veneto < sicilia, out)
	assert.NotContains(t, out, "TOSCANA")
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps(testSource())
	err := (&main.StatsCmd{}).Run(deps)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Records:  4")
	assert.Contains(t, out, "Admitted: 3")
	assert.Contains(t, out, "wine name required")
	assert.Contains(t, out, "red")
}
