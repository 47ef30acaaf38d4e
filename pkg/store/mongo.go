package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures the MongoDB-backed archive.
type MongoConfig struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string `toml:"uri"`

	// Database defaults to "dazzle".
	Database string `toml:"database"`
}

const (
	mongoDefaultDatabase = "dazzle"
	mongoCollection      = "plans"
	mongoConnectTimeout  = 5 * time.Second
)

// MongoStore implements Store on a MongoDB collection. Entries are upserted
// by fingerprint, so the collection holds at most one plan per workspace
// content hash.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo store: URI is required")
	}
	db := cfg.Database
	if db == "" {
		db = mongoDefaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo store: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo store: ping %s: %w", cfg.URI, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}

	filter := bson.M{"fingerprint": entry.Fingerprint}
	update := bson.M{"$set": bson.M{
		"workspace_id": entry.WorkspaceID,
		"persona_id":   entry.PersonaID,
		"fingerprint":  entry.Fingerprint,
		"plan":         entry.Plan,
		"stored_at":    entry.StoredAt,
	}, "$setOnInsert": bson.M{
		"_id": entry.ID,
	}}
	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo store: put %s: %w", entry.Fingerprint, err)
	}
	return nil
}

func (s *MongoStore) GetByFingerprint(ctx context.Context, fingerprint string) (*Entry, error) {
	var entry Entry
	err := s.coll.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &ErrNotFound{Key: fingerprint}
	}
	if err != nil {
		return nil, fmt.Errorf("mongo store: get %s: %w", fingerprint, err)
	}
	return &entry, nil
}

func (s *MongoStore) ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stored_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.M{"workspace_id": workspaceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo store: list %s: %w", workspaceID, err)
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("mongo store: decode %s: %w", workspaceID, err)
	}
	return entries, nil
}

func (s *MongoStore) Delete(ctx context.Context, fingerprint string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return fmt.Errorf("mongo store: delete %s: %w", fingerprint, err)
	}
	if res.DeletedCount == 0 {
		return &ErrNotFound{Key: fingerprint}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Compile-time check that MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
