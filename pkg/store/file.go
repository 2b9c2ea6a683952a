package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// FileStore keeps each snapshot in <dir>/<id>.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based store.
// If dir is empty, defaults to ~/.config/anchorlayout/snapshots/
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "anchorlayout", "snapshots")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := snapshot.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return snap, err
}

func (s *FileStore) Put(ctx context.Context, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := snapshot.WriteFile(snap, s.path(snap.ID)); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// List skips files that do not parse as snapshots.
func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var snaps []*snapshot.Snapshot
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		snap, err := snapshot.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
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

func (s *FileStore) Close() error { return nil }

// Dir returns the base directory for snapshot files.
func (s *FileStore) Dir() string { return s.dir }

var _ Store = (*FileStore)(nil)
