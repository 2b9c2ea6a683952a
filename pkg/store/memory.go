package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// MemoryStore keeps snapshots in process memory. Used by tests and by
// servers started without a persistent backend.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*snapshot.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*snapshot.Snapshot)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

func (s *MemoryStore) Put(ctx context.Context, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = snap
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[id]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := make([]*snapshot.Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		snaps = append(snaps, snap)
	}
	slices.SortFunc(snaps, func(a, b *snapshot.Snapshot) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	out := make([]Summary, len(snaps))
	for i, snap := range snaps {
		out[i] = summarize(snap)
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
