package template

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

// NewMongoStorage creates a template storage on the given database with an
// index supporting the active-template-by-type lookup.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	collection := db.Collection("templates")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "active", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create templates index: %w", err)
	}

	return &MongoStorage{collection: collection}, nil
}

func (s *MongoStorage) Create(ctx context.Context, t Template) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrTemplateExists
		}
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Template, error) {
	var t Template
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return &t, nil
}

func (s *MongoStorage) FindByType(ctx context.Context, notificationType string) (*Template, error) {
	var t Template
	err := s.collection.FindOne(ctx, bson.M{"type": notificationType, "active": true}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template by type: %w", err)
	}
	return &t, nil
}

func (s *MongoStorage) List(ctx context.Context) ([]Template, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}

func (s *MongoStorage) Update(ctx context.Context, id string, update Update) (*Template, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Channels != nil {
		set["channels"] = update.Channels
	}
	if update.Variables != nil {
		set["variables"] = update.Variables
	}
	if update.Translations != nil {
		set["translations"] = update.Translations
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	var t Template
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return &t, nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
