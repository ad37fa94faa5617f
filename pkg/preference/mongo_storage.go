package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage is a MongoDB-backed implementation of the Storage interface.
type MongoStorage struct {
	collection *mongo.Collection
}

// NewMongoStorage creates a preference storage on the given database and
// ensures the unique userId index exists.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	collection := db.Collection("preferences")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences index: %w", err)
	}

	return &MongoStorage{collection: collection}, nil
}

func (s *MongoStorage) FindByUserID(ctx context.Context, userID string) (*Preferences, error) {
	var prefs Preferences
	err := s.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}
	return &prefs, nil
}

func (s *MongoStorage) Create(ctx context.Context, prefs Preferences) error {
	if prefs.UserID == "" {
		return ErrUserIDRequired
	}

	now := time.Now()
	if prefs.CreatedAt.IsZero() {
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, prefs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPreferencesExist
		}
		return fmt.Errorf("failed to create preferences: %w", err)
	}
	return nil
}

func (s *MongoStorage) Upsert(ctx context.Context, userID string, update Update) (*Preferences, error) {
	// Dotted paths merge section entries key by key instead of replacing the
	// whole channels/types documents.
	set := bson.M{"updatedAt": time.Now()}
	for name, enabled := range update.Channels {
		set["channels."+name] = enabled
	}
	for name, tp := range update.Types {
		set["types."+name] = tp
	}

	var prefs Preferences
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"userId": userID, "createdAt": time.Now()},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return &prefs, nil
}

func (s *MongoStorage) RemoveType(ctx context.Context, userID, notificationType string) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$unset": bson.M{"types." + notificationType: 1},
			"$set":   bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove type preference: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPreferencesNotFound
	}
	return nil
}
