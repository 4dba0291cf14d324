// Package sqlite stores wine-list snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB is a handle to the snapshot database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the database file at path. Nothing is opened
// until Open is called.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// pragma is a connection setting applied on Open.
type pragma struct {
	stmt string
	desc string
	file bool // only for file-backed databases
}

var pragmas = []pragma{
	{stmt: "PRAGMA busy_timeout = 5000", desc: "set busy timeout"},
	{stmt: "PRAGMA journal_mode = WAL", desc: "enable WAL mode", file: true},
	{stmt: "PRAGMA foreign_keys = ON", desc: "enable foreign keys"},
}

// Open connects to the database, creating the file, its directory and the
// schema as needed.
func (db *DB) Open() error {
	if db.path != MemoryPath {
		if dir := filepath.Dir(db.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; a single connection also keeps an in-memory
	// database alive for the life of the DB.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range pragmas {
		if p.file && db.path == MemoryPath {
			continue
		}
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection. It is safe to call on a DB that
// was never opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// schema holds one row per snapshot and one row per admitted wine. Wines
// keep their catalog position and the raw field text; derived values are
// recomputed on load.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id           TEXT PRIMARY KEY,
	source       TEXT NOT NULL,
	content_hash TEXT NOT NULL DEFAULT '',
	total        INTEGER NOT NULL DEFAULT 0,
	admitted     INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wines (
	snapshot_id  TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	number       TEXT NOT NULL DEFAULT '',
	name         TEXT NOT NULL DEFAULT '',
	producer     TEXT NOT NULL DEFAULT '',
	region       TEXT NOT NULL DEFAULT '',
	varietals    TEXT NOT NULL DEFAULT '',
	vintage      TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	alcohol      TEXT NOT NULL DEFAULT '',
	aging        TEXT NOT NULL DEFAULT '',
	soil         TEXT NOT NULL DEFAULT '',
	elevation    TEXT NOT NULL DEFAULT '',
	organic      INTEGER NOT NULL DEFAULT 0,
	price_glass  TEXT NOT NULL DEFAULT '',
	price_bottle TEXT NOT NULL DEFAULT '',
	price        TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (snapshot_id, position)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_content_hash ON snapshots(content_hash);
`
