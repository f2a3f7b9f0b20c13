// Package store keeps a history of analysis snapshots in sqlite. The
// analysis core itself owns no persistence; this is the surrounding
// application's cache of past results.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ticketlens/internal/stats"
)

// Store wraps the snapshot history database.
type Store struct {
	db *sql.DB
}

// SnapshotRow is one persisted analysis result.
type SnapshotRow struct {
	ID         int64
	Source     string
	Total      int
	Resolved   int
	Efficiency int
	TakenAt    time.Time
	Metrics    stats.Metrics
}

// Open opens (and if needed creates) the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		source      TEXT NOT NULL DEFAULT '',
		total       INTEGER NOT NULL,
		resolved    INTEGER NOT NULL,
		efficiency  INTEGER NOT NULL,
		metrics     TEXT NOT NULL,
		taken_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveSnapshot records one analysis result.
func (s *Store) SaveSnapshot(source string, m stats.Metrics) (int64, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(
		`INSERT INTO snapshots (source, total, resolved, efficiency, metrics) VALUES (?, ?, ?, ?, ?)`,
		source, m.Total, m.Resolved, m.EfficiencyScore, string(payload))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecentSnapshots returns the newest snapshots first, up to limit.
func (s *Store) RecentSnapshots(limit int) ([]SnapshotRow, error) {
	rows, err := s.db.Query(
		`SELECT id, source, total, resolved, efficiency, metrics, taken_at
		 FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var r SnapshotRow
		var payload string
		if err := rows.Scan(&r.ID, &r.Source, &r.Total, &r.Resolved, &r.Efficiency, &payload, &r.TakenAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &r.Metrics); err != nil {
			return nil, fmt.Errorf("decoding snapshot %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
