package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/anchorlayout/pkg/snapshot"
)

// DefaultCollection is the collection snapshots are stored in.
const DefaultCollection = "snapshots"

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string // Defaults to DefaultCollection
}

// MongoStore persists snapshots in a MongoDB collection, one document per
// snapshot with the snapshot ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := NewMongoStoreFromClient(client, opts.Database, opts.Collection)
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. Close does not
// disconnect a client it did not create.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return &snap, nil
}

func (s *MongoStore) Put(ctx context.Context, snap *snapshot.Snapshot) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "created_at", Value: 1},
			{Key: "declaration_hash", Value: 1},
			{Key: "policy", Value: 1},
			{Key: "frames", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$frames", bson.A{}}}}}}},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var out []Summary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
