package channel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notifykit/notifykit/pkg/logger"
)

// InAppChannelName is the registry name of the in-app adapter.
const InAppChannelName = "inApp"

// ContentStore is the narrow persistence capability the in-app adapter needs:
// writing the rendered title/body onto the notification record so in-app
// clients read denormalized content without a template round-trip.
type ContentStore interface {
	AttachContent(ctx context.Context, notificationID, title, body string) error
}

// InAppAdapter delivers notifications to the in-app channel. Delivery means
// persisting the rendered content onto the notification record and, when a
// feed is configured, publishing to live subscribers.
type InAppAdapter struct {
	store  ContentStore
	feed   *Feed
	logger *slog.Logger
}

// InAppOption configures an InAppAdapter.
type InAppOption func(*InAppAdapter)

// WithInAppLogger sets the logger for the adapter.
func WithInAppLogger(logger *slog.Logger) InAppOption {
	return func(a *InAppAdapter) {
		a.logger = logger
	}
}

// WithInAppFeed attaches a live feed; every successful send is published to
// the recipient's subscribers.
func WithInAppFeed(feed *Feed) InAppOption {
	return func(a *InAppAdapter) {
		a.feed = feed
	}
}

// NewInAppAdapter creates the in-app channel adapter.
func NewInAppAdapter(store ContentStore, opts ...InAppOption) *InAppAdapter {
	a := &InAppAdapter{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *InAppAdapter) Name() string {
	return InAppChannelName
}

func (a *InAppAdapter) Send(ctx context.Context, payload Payload) (DeliveryResult, error) {
	if payload.Content.InApp == nil {
		return a.failure("missing in-app content", false), nil
	}

	notificationID, _ := payload.Metadata[MetaNotificationID].(string)
	if notificationID != "" {
		if err := a.store.AttachContent(ctx, notificationID, payload.Content.InApp.Title, payload.Content.InApp.Body); err != nil {
			a.logger.LogAttrs(ctx, slog.LevelError, "failed to persist in-app content",
				logger.NotificationID(notificationID),
				logger.UserID(payload.UserID),
				logger.Error(err),
			)
			return a.failure(fmt.Sprintf("failed to persist in-app content: %v", err), true), nil
		}
	}

	sentAt := time.Now()

	if a.feed != nil {
		a.feed.Publish(ctx, FeedMessage{
			NotificationID: notificationID,
			UserID:         payload.UserID,
			Title:          payload.Content.InApp.Title,
			Body:           payload.Content.InApp.Body,
			SentAt:         sentAt,
		})
	}

	return DeliveryResult{
		Success:   true,
		Channel:   InAppChannelName,
		MessageID: notificationID,
		Timestamp: sentAt,
	}, nil
}

// Verify always succeeds: in-app delivery has no external transport.
func (a *InAppAdapter) Verify(ctx context.Context) error {
	return nil
}

func (a *InAppAdapter) failure(message string, retryable bool) DeliveryResult {
	return DeliveryResult{
		Success:   false,
		Channel:   InAppChannelName,
		Timestamp: time.Now(),
		Error: &DeliveryError{
			Code:      CodeInAppSendFailed,
			Message:   message,
			Retryable: retryable,
		},
	}
}
