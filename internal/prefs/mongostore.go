package prefs

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the cloud half of the reconciled pair: one document per user
// in the preferences collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("preferences")}
}

// prefsDoc is the persisted shape; _id is the user ID.
type prefsDoc struct {
	UserID      string      `bson:"_id"`
	Preferences Preferences `bson:"preferences"`
}

func (s *MongoStore) Load(ctx context.Context, userID string) (Preferences, error) {
	var doc prefsDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Preferences{}, ErrNotFound
		}
		return Preferences{}, err
	}
	return doc.Preferences, nil
}

func (s *MongoStore) Save(ctx context.Context, userID string, p Preferences) error {
	doc := prefsDoc{UserID: userID, Preferences: p}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": userID}, doc, options.Replace().SetUpsert(true))
	return err
}

// Connect dials MongoDB and verifies the connection, the same way the rest
// of the service treats external dependencies: fail fast at startup.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		return nil, err
	}
	return client, nil
}
