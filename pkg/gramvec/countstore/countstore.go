// Package countstore persists per-class bigram counts as immutable
// snapshots, so mappings can be rebuilt without recounting the corpus.
package countstore

import (
	"context"
	"errors"
	"time"

	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
)

// ErrSnapshotNotFound is returned when the requested snapshot does not
// exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one complete counting pass over a corpus.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Corpus    string
	Records   int64
	Malformed int64
	Counts    ngram.ClassCounts
}

// Info summarizes a stored snapshot without its counts.
type Info struct {
	ID           string
	CreatedAt    time.Time
	Corpus       string
	Records      int64
	UniqueTarget int64
	UniqueOther  int64
}

// Store persists counting snapshots.
type Store interface {
	// SaveSnapshot stores snap and returns its id. A snapshot without
	// an id is assigned a fresh one.
	SaveSnapshot(ctx context.Context, snap Snapshot) (string, error)
	// GetSnapshot returns the snapshot with the given id.
	GetSnapshot(ctx context.Context, id string) (Snapshot, error)
	// LatestSnapshot returns the most recently stored snapshot.
	LatestSnapshot(ctx context.Context) (Snapshot, error)
	// ListSnapshots summarizes all snapshots, newest first.
	ListSnapshots(ctx context.Context) ([]Info, error)
	// Close releases the store's resources.
	Close() error
}
