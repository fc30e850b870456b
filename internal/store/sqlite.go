package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// SQLiteStore keeps JSON snapshots of the analytics state in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ model.SnapshotStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and migrates
// it to the current schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One writer; modernc serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported %d", version, schemaVersion)
	}

	createTable := `CREATE TABLE IF NOT EXISTS analytics_snapshots (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at INTEGER NOT NULL,
		payload  TEXT    NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		return fmt.Errorf("creating analytics_snapshots table: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	return nil
}

// Save appends snap. A zero TakenAt is stamped with the current time.
func (s *SQLiteStore) Save(ctx context.Context, snap model.AnalyticsSnapshot) error {
	if snap.TakenAt.IsZero() {
		snap.TakenAt = s.now()
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO analytics_snapshots (taken_at, payload) VALUES (?, ?)",
		snap.TakenAt.UnixMilli(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently saved snapshot, or nil when there is none.
func (s *SQLiteStore) Latest(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM analytics_snapshots ORDER BY id DESC LIMIT 1",
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}

	var snap model.AnalyticsSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// Prune deletes snapshots older than olderThan. The newest snapshot is always
// kept so a restart can restore from it.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) error {
	cutoff := s.now().Add(-olderThan).UnixMilli()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM analytics_snapshots
		 WHERE taken_at < ?
		   AND id <> (SELECT MAX(id) FROM analytics_snapshots)`,
		cutoff,
	)
	if err != nil {
		return fmt.Errorf("pruning snapshots older than %v: %w", olderThan, err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analytics_snapshots").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
