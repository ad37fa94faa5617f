package notification

import (
	"context"
	"time"
)

// Storage handles notification persistence. Per-channel state writes are
// independent partial updates keyed by notification id, safe to interleave
// with reads of the same record.
type Storage interface {
	// Create stores a new notification. The idempotency key, when present,
	// is unique across all notifications; Create returns
	// ErrDuplicateIdempotencyKey when another record already holds it.
	Create(ctx context.Context, n Notification) error

	// Get retrieves a notification by ID.
	// Returns ErrNotificationNotFound when no record exists.
	Get(ctx context.Context, id string) (*Notification, error)

	// FindByIdempotencyKey retrieves the notification holding the key.
	FindByIdempotencyKey(ctx context.Context, key string) (*Notification, error)

	// List returns notifications for a user, newest first.
	List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error)

	// Count returns the number of notifications for a user, optionally
	// restricted to unread ones.
	Count(ctx context.Context, userID string, onlyUnread bool) (int, error)

	// SetChannelState writes one channel's delivery state.
	SetChannelState(ctx context.Context, id, channelName string, state ChannelState) error

	// SetStatus writes the aggregate status.
	SetStatus(ctx context.Context, id string, status Status) error

	// AttachContent writes the denormalized in-app title and content.
	AttachContent(ctx context.Context, id, title, content string) error

	// MarkRead stamps the notification's readAt.
	MarkRead(ctx context.Context, id string, readAt time.Time) error

	// MarkAllRead stamps readAt on every unread notification of the user and
	// returns the number updated.
	MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error)
}

// ListOptions provides filtering and pagination options for listing notifications.
type ListOptions struct {
	Limit      int  // Maximum number of notifications to return (0 = no limit)
	Offset     int  // Number of notifications to skip for pagination
	OnlyUnread bool // When true, only return unread notifications
}
