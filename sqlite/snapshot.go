package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/s4ng4/winelist"
)

// Compile-time interface verification.
var _ winelist.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements winelist.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// HashWines computes the xxHash of the wines' JSON encoding and returns it
// as a hex string. Equal wine lists in equal order hash the same.
func HashWines(wines []*winelist.Wine) string {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	for _, w := range wines {
		// Writes to a Digest never fail and Wine always encodes.
		_ = enc.Encode(w)
	}
	return hex.EncodeToString(d.Sum(nil))
}

const snapshotColumns = "id, source, content_hash, total, admitted, created_at"

// CreateSnapshot stores wines under a new snapshot in a single transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *winelist.Snapshot, wines []*winelist.Wine) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	snap.ID = uuid.New().String()
	snap.CreatedAt = time.Now().UTC().Truncate(time.Second)
	snap.ContentHash = HashWines(wines)
	snap.Admitted = len(wines)
	if snap.Total < snap.Admitted {
		snap.Total = snap.Admitted
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (`+snapshotColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Source, snap.ContentHash, snap.Total, snap.Admitted,
		formatTime(snap.CreatedAt)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO wines (snapshot_id, position, number, name, producer, region, varietals, vintage,
			type, description, alcohol, aging, soil, elevation, organic, price_glass, price_bottle, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, w := range wines {
		if _, err := stmt.ExecContext(ctx, snap.ID, i, w.Number, w.Name, w.Producer, w.Region,
			w.Varietals, w.Vintage, w.Type, w.Description, w.Alcohol, w.Aging, w.Soil, w.Elevation,
			int(w.Organic), w.PriceGlass, w.PriceBottle, w.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*winelist.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, winelist.Errorf(winelist.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter winelist.SnapshotFilter) ([]*winelist.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + snapshotColumns + " FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	// rowid breaks ties between snapshots created within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*winelist.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// FindSnapshotWines retrieves the wines of a snapshot in stored order.
func (s *SnapshotService) FindSnapshotWines(ctx context.Context, id string) ([]*winelist.Wine, error) {
	if _, err := s.FindSnapshotByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, name, producer, region, varietals, vintage, type, description,
			alcohol, aging, soil, elevation, organic, price_glass, price_bottle, price
		FROM wines
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wines := []*winelist.Wine{}
	for rows.Next() {
		var w winelist.Wine
		var organic int
		if err := rows.Scan(&w.Number, &w.Name, &w.Producer, &w.Region, &w.Varietals, &w.Vintage,
			&w.Type, &w.Description, &w.Alcohol, &w.Aging, &w.Soil, &w.Elevation, &organic,
			&w.PriceGlass, &w.PriceBottle, &w.Price); err != nil {
			return nil, err
		}
		w.Organic = winelist.Organic(organic)
		wines = append(wines, &w)
	}

	return wines, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot and its wines.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return winelist.Errorf(winelist.ENOTFOUND, "snapshot not found")
	}

	return nil
}

func scanSnapshot(row scanner) (*winelist.Snapshot, error) {
	var snap winelist.Snapshot
	var createdAt string

	if err := row.Scan(&snap.ID, &snap.Source, &snap.ContentHash, &snap.Total, &snap.Admitted, &createdAt); err != nil {
		return nil, err
	}

	var err error
	snap.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
