package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/s4ng4/winelist/cmd/winelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `{"wines": [
	{"wine_number": 1, "wine_name": "Barolo Castiglione", "wine_producer": "Vietti", "region": "Piemonte", "wine_type": "ROSSO", "wine_price_bottle": "85"},
	{"wine_number": 2, "wine_name": "Soave Classico", "wine_producer": "Pieropan", "region": "VENETO", "wine_type": "BIANCO", "wine_price_glass": "12"},
	{"wine_number": 3, "wine_name": "Mojito", "wine_producer": "Bar", "region": "SICILIA", "wine_type": "COCKTAIL", "wine_price": "9"},
	"not a record"
]}`

// setupMain returns a Main using a temporary database and catalog file.
func setupMain(t *testing.T) (*main.Main, string, string) {
	t.Helper()

	dir := t.TempDir()
	catalog := filepath.Join(dir, "wines.json")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalogJSON), 0o644))

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "test.db")
	return m, catalog, m.DBPath
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m, _, _ := setupMain(t)
	stdout, _, err := run(t, m, "--help")

	require.NoError(t, err)
	for _, cmd := range []string{"serve", "list", "show", "suggest", "search", "regions", "stats", "import", "snapshots", "delete", "sitemap", "export"} {
		assert.Contains(t, stdout, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m, _, _ := setupMain(t)
	_, _, err := run(t, m)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	m, catalog, _ := setupMain(t)
	_, _, err := run(t, m, "--catalog", catalog, "--log-level", "loud", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestMain_Run_ListFromFile(t *testing.T) {
	t.Parallel()

	m, catalog, dbPath := setupMain(t)
	stdout, stderr, err := run(t, m, "--catalog", catalog, "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Barolo Castiglione")
	assert.Contains(t, stdout, "Soave Classico")
	assert.NotContains(t, stdout, "Mojito")
	assert.Empty(t, stderr)

	// Catalog commands never touch the database.
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMain_Run_MissingCatalog(t *testing.T) {
	t.Parallel()

	m, _, _ := setupMain(t)
	_, stderr, err := run(t, m, "--catalog", filepath.Join(t.TempDir(), "missing.json"), "list")

	require.Error(t, err)
	assert.Contains(t, stderr, "catalog unavailable")
}

func TestMain_Run_SnapshotLifecycle(t *testing.T) {
	t.Parallel()

	m, catalog, _ := setupMain(t)

	stdout, _, err := run(t, m, "--catalog", catalog, "import")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 of 3 wines admitted")

	stdout, _, err = run(t, m, "--catalog", catalog, "import")
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")

	// The file may change; the snapshot must not.
	require.NoError(t, os.WriteFile(catalog, []byte(`{"wines": []}`), 0o644))

	stdout, _, err = run(t, m, "--snapshot", "latest", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Barolo Castiglione")
	assert.Contains(t, stdout, "Soave Classico")

	stdout, _, err = run(t, m, "snapshots")
	require.NoError(t, err)
	assert.Contains(t, stdout, catalog)

	id := strings.Fields(stdout)[0]

	_, stderr, err := run(t, m, "delete", id)
	require.Error(t, err)
	assert.Contains(t, stderr, "--force")

	stdout, _, err = run(t, m, "delete", id, "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted snapshot "+id)

	stdout, _, err = run(t, m, "snapshots")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No snapshots found")

	_, stderr, err = run(t, m, "--snapshot", "latest", "list")
	require.Error(t, err)
	assert.Contains(t, stderr, "no snapshots found")
}
