// Package memstore implements the snapshot store in memory, for tests
// and one-shot runs that do not need persistence.
package memstore

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognitext/gramvec/pkg/gramvec/countstore"
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
)

// Store keeps snapshots in memory.
type Store struct {
	mu        sync.RWMutex
	entropy   *ulid.MonotonicEntropy
	order     []string
	snapshots map[string]countstore.Snapshot
}

var _ countstore.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		entropy:   ulid.Monotonic(rand.Reader, 0),
		snapshots: make(map[string]countstore.Snapshot),
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) SaveSnapshot(ctx context.Context, snap countstore.Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		snap.ID = ulid.MustNew(ulid.Now(), s.entropy).String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.snapshots[snap.ID]; exists {
		return "", fmt.Errorf("snapshot %s already exists", snap.ID)
	}

	snap.Counts = copyCounts(snap.Counts)
	s.snapshots[snap.ID] = snap
	s.order = append(s.order, snap.ID)
	return snap.ID, nil
}

func (s *Store) GetSnapshot(ctx context.Context, id string) (countstore.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return countstore.Snapshot{}, fmt.Errorf("%w: %s", countstore.ErrSnapshotNotFound, id)
	}
	snap.Counts = copyCounts(snap.Counts)
	return snap, nil
}

func (s *Store) LatestSnapshot(ctx context.Context) (countstore.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return countstore.Snapshot{}, countstore.ErrSnapshotNotFound
	}
	snap := s.snapshots[s.order[len(s.order)-1]]
	snap.Counts = copyCounts(snap.Counts)
	return snap, nil
}

func (s *Store) ListSnapshots(ctx context.Context) ([]countstore.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]countstore.Info, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		snap := s.snapshots[s.order[i]]
		infos = append(infos, countstore.Info{
			ID:           snap.ID,
			CreatedAt:    snap.CreatedAt,
			Corpus:       snap.Corpus,
			Records:      snap.Records,
			UniqueTarget: int64(len(snap.Counts.Target)),
			UniqueOther:  int64(len(snap.Counts.Other)),
		})
	}
	return infos, nil
}

// copyCounts keeps stored snapshots isolated from caller mutation.
func copyCounts(cc ngram.ClassCounts) ngram.ClassCounts {
	out := ngram.NewClassCounts()
	out.Merge(cc)
	return out
}
