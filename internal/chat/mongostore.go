package chat

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists saved conversations, one document per conversation.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("conversations")}
}

// SaveConversation upserts the full conversation document. Saving twice
// overwrites with the longer message log; conversations are append-only so
// this is always the newer state.
func (s *MongoStore) SaveConversation(ctx context.Context, c Conversation) error {
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}
