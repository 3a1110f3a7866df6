// Package sqlite implements the snapshot store on SQLite.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/cognitext/gramvec/pkg/gramvec/countstore"
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
)

// Class column values.
const (
	classTarget = "target"
	classOther  = "other"
)

type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens or creates the snapshot database at path.
func Open(ctx context.Context, path string) (countstore.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	s := &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *sqliteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		corpus TEXT NOT NULL,
		records INTEGER NOT NULL,
		malformed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_counts (
		snapshot_id TEXT NOT NULL,
		class TEXT NOT NULL,
		bigram TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (snapshot_id, class, bigram),
		FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap countstore.Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = ulid.MustNew(ulid.Now(), s.entropy).String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, created_at, corpus, records, malformed) VALUES (?, ?, ?, ?, ?)",
		snap.ID, snap.CreatedAt.Format(time.RFC3339), snap.Corpus, snap.Records, snap.Malformed)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	if err := insertCounts(ctx, tx, snap.ID, classTarget, snap.Counts.Target); err != nil {
		return "", err
	}
	if err := insertCounts(ctx, tx, snap.ID, classOther, snap.Counts.Other); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snap.ID, nil
}

func insertCounts(ctx context.Context, tx *sql.Tx, snapshotID, class string, counts ngram.Counts) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO snapshot_counts (snapshot_id, class, bigram, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare count insert: %w", err)
	}
	defer stmt.Close()

	for bigram, count := range counts {
		if _, err := stmt.ExecContext(ctx, snapshotID, class, bigram, count); err != nil {
			return fmt.Errorf("failed to insert count for %q: %w", bigram, err)
		}
	}
	return nil
}

func (s *sqliteStore) GetSnapshot(ctx context.Context, id string) (countstore.Snapshot, error) {
	return s.loadSnapshot(ctx,
		"SELECT id, created_at, corpus, records, malformed FROM snapshots WHERE id = ?", id)
}

func (s *sqliteStore) LatestSnapshot(ctx context.Context) (countstore.Snapshot, error) {
	// ULIDs sort lexicographically by creation time.
	return s.loadSnapshot(ctx,
		"SELECT id, created_at, corpus, records, malformed FROM snapshots ORDER BY id DESC LIMIT 1")
}

func (s *sqliteStore) loadSnapshot(ctx context.Context, query string, args ...any) (countstore.Snapshot, error) {
	var snap countstore.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&snap.ID, &createdAt, &snap.Corpus, &snap.Records, &snap.Malformed)
	if err == sql.ErrNoRows {
		return countstore.Snapshot{}, countstore.ErrSnapshotNotFound
	}
	if err != nil {
		return countstore.Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	snap.Counts = ngram.NewClassCounts()
	rows, err := s.db.QueryContext(ctx,
		"SELECT class, bigram, count FROM snapshot_counts WHERE snapshot_id = ?", snap.ID)
	if err != nil {
		return countstore.Snapshot{}, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var class, bigram string
		var count int64
		if err := rows.Scan(&class, &bigram, &count); err != nil {
			return countstore.Snapshot{}, fmt.Errorf("failed to scan count row: %w", err)
		}
		switch class {
		case classTarget:
			snap.Counts.Target[bigram] = count
		case classOther:
			snap.Counts.Other[bigram] = count
		}
	}
	if err := rows.Err(); err != nil {
		return countstore.Snapshot{}, fmt.Errorf("failed to read count rows: %w", err)
	}
	return snap, nil
}

func (s *sqliteStore) ListSnapshots(ctx context.Context) ([]countstore.Info, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.created_at, s.corpus, s.records,
			COALESCE(SUM(CASE WHEN c.class = 'target' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.class = 'other' THEN 1 ELSE 0 END), 0)
		FROM snapshots s
		LEFT JOIN snapshot_counts c ON c.snapshot_id = s.id
		GROUP BY s.id, s.created_at, s.corpus, s.records
		ORDER BY s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []countstore.Info
	for rows.Next() {
		var info countstore.Info
		var createdAt string
		if err := rows.Scan(&info.ID, &createdAt, &info.Corpus, &info.Records,
			&info.UniqueTarget, &info.UniqueOther); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot rows: %w", err)
	}
	return infos, nil
}
