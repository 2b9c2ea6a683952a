// Package store persists resolution snapshots.
//
// Backends:
//   - FileStore: one JSON file per snapshot, for the CLI
//   - MongoStore: a MongoDB collection, for shared API deployments
//   - MemoryStore: process-local, for tests and throwaway servers
//
// Snapshots are keyed by their ID. Get returns ErrNotFound for unknown IDs.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Summary is the listing entry for a stored snapshot.
type Summary struct {
	ID              string    `json:"id" bson:"_id"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	DeclarationHash string    `json:"declaration_hash,omitempty" bson:"declaration_hash,omitempty"`
	Policy          string    `json:"policy" bson:"policy"`
	Frames          int       `json:"frames" bson:"frames"`
}

func summarize(s *snapshot.Snapshot) Summary {
	return Summary{
		ID:              s.ID,
		CreatedAt:       s.CreatedAt,
		DeclarationHash: s.DeclarationHash,
		Policy:          s.Policy,
		Frames:          len(s.Frames),
	}
}

// Store persists snapshots.
type Store interface {
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)
	Put(ctx context.Context, s *snapshot.Snapshot) error
	Delete(ctx context.Context, id string) error
	// List returns snapshots newest first.
	List(ctx context.Context) ([]Summary, error)
	Close() error
}
