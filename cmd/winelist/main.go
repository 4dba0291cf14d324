package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/fs"
	wlhttp "github.com/s4ng4/winelist/http"
	wlslog "github.com/s4ng4/winelist/slog"
	"github.com/s4ng4/winelist/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path, used when --db is not given.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Snapshot service, exposed for end-to-end testing.
	SnapshotService winelist.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("winelist"),
		kong.Description("Browse, search and serve a restaurant wine list."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'winelist --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := cli.LogLevel
	if level == "" {
		level = "warn"
		if cmd == "serve" {
			level = "info"
		}
	}
	if deps.Logger, err = newLogger(stderr, level, cli.LogFormat); err != nil {
		return err
	}
	deps.OpenSource = func(ref string) winelist.CatalogSource {
		return wlslog.NewLoggingSource(newCatalogSource(ref), ref, deps.Logger)
	}

	// The database is only opened for commands that need it.
	needsDB := cli.Snapshot != "" || cmd == "import" || cmd == "snapshots" || cmd == "delete"
	if needsDB {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WINELIST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.SnapshotService = sqlite.NewSnapshotService(m.DB)
		deps.Snapshots = wlslog.NewLoggingSnapshotService(m.SnapshotService, deps.Logger)
	}

	if cli.Snapshot != "" {
		name := "snapshot:" + cli.Snapshot
		deps.Source = wlslog.NewLoggingSource(winelist.NewSnapshotSource(deps.Snapshots, cli.Snapshot), name, deps.Logger)
		deps.SourceName = name
	} else {
		deps.Source = deps.OpenSource(cli.Catalog)
		deps.SourceName = cli.Catalog
		if !isURL(cli.Catalog) {
			deps.CatalogPath = cli.Catalog
		}
	}

	return kongCtx.Run(deps)
}

// newCatalogSource returns an HTTP source for http(s) URLs and a file
// source for anything else.
func newCatalogSource(ref string) winelist.CatalogSource {
	if isURL(ref) {
		return wlhttp.NewSource(ref)
	}
	return fs.NewSource(ref)
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// newLogger builds the program logger writing to w. format is "text" or
// "json".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, winelist.Errorf(winelist.EINVALID, "invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("WINELIST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "winelist.db"
	}
	return filepath.Join(home, ".winelist", "winelist.db")
}
