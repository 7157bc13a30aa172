package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoSession struct {
	ID        string    `bson:"_id"`
	Session   Session   `bson:"session"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// MongoStore keeps one document per session; a TTL index on expiresAt reaps old ones.
type MongoStore struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewMongoStore(coll *mongo.Collection, ttl time.Duration) *MongoStore {
	return &MongoStore{coll: coll, ttl: ttl}
}

// EnsureIndexes creates the expiry index.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create session ttl index: %w", err)
	}
	return nil
}

func (m *MongoStore) Load(ctx context.Context, id string) (*Session, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "expiresAt", Value: bson.D{{Key: "$gt", Value: time.Now().UTC()}}},
	}

	var doc mongoSession
	err := m.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &doc.Session, nil
}

func (m *MongoStore) Save(ctx context.Context, id string, s *Session) error {
	doc := mongoSession{ID: id, Session: *s, ExpiresAt: time.Now().UTC().Add(m.ttl)}
	_, err := m.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
