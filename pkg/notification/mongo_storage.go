package notification

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
// The unique sparse index on idempotencyKey is the source of truth for
// duplicate detection: a racing insert loses with a duplicate key error that
// Create maps to ErrDuplicateIdempotencyKey.
type MongoStorage struct {
	collection *mongo.Collection
}

// NewMongoStorage creates a notification storage on the given database and
// ensures its indexes exist.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	collection := db.Collection("notifications")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification indexes: %w", err)
	}

	return &MongoStorage{collection: collection}, nil
}

func (s *MongoStorage) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		return ErrIDRequired
	}
	if n.UserID == "" {
		return ErrUserIDRequired
	}

	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, n); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return &n, nil
}

func (s *MongoStorage) FindByIdempotencyKey(ctx context.Context, key string) (*Notification, error) {
	var n Notification
	err := s.collection.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification by idempotency key: %w", err)
	}
	return &n, nil
}

func (s *MongoStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	filter := bson.M{"userId": userID}
	if opts.OnlyUnread {
		filter["readAt"] = bson.M{"$exists": false}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (s *MongoStorage) Count(ctx context.Context, userID string, onlyUnread bool) (int, error) {
	filter := bson.M{"userId": userID}
	if onlyUnread {
		filter["readAt"] = bson.M{"$exists": false}
	}

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return int(count), nil
}

func (s *MongoStorage) SetChannelState(ctx context.Context, id, channelName string, state ChannelState) error {
	// Dotted path keeps this a partial update on the single channel entry,
	// safe to interleave with concurrent reads and other channels' writes.
	return s.updateOne(ctx, id, bson.M{"channels." + channelName: state})
}

func (s *MongoStorage) SetStatus(ctx context.Context, id string, status Status) error {
	return s.updateOne(ctx, id, bson.M{"status": status})
}

func (s *MongoStorage) AttachContent(ctx context.Context, id, title, content string) error {
	return s.updateOne(ctx, id, bson.M{"title": title, "content": content})
}

func (s *MongoStorage) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	return s.updateOne(ctx, id, bson.M{"readAt": readAt})
}

func (s *MongoStorage) MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error) {
	res, err := s.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "readAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"readAt": readAt, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return int(res.ModifiedCount), nil
}

func (s *MongoStorage) updateOne(ctx context.Context, id string, set bson.M) error {
	set["updatedAt"] = time.Now()

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
