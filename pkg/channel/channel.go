package channel

import (
	"context"
	"time"
)

// Metadata keys the orchestrator sets on dispatch payloads.
const (
	// MetaNotificationID correlates a delivery with its notification record.
	MetaNotificationID = "notificationId"
	// MetaNotificationType carries the notification type for adapters that tag sends.
	MetaNotificationType = "notificationType"
	// MetaEmail carries the recipient address for the email adapter.
	MetaEmail = "email"
)

// Payload is one delivery handed to an adapter: the recipient, the rendered
// content for the adapter's channel, and free-form metadata (including the
// notification id, for adapters that need to write status back).
type Payload struct {
	UserID   string
	Content  Content
	Metadata map[string]any
	Options  map[string]any
}

// DeliveryError describes a failed delivery. Retryable distinguishes
// transient transport failures from permanent ones such as an unregistered
// channel.
type DeliveryError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// DeliveryResult is the outcome of one send attempt. It is always a plain
// value; failures are carried in Error, never raised past the dispatcher.
type DeliveryResult struct {
	Success   bool           `json:"success"`
	Channel   string         `json:"channel"`
	MessageID string         `json:"message_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Error     *DeliveryError `json:"error,omitempty"`
}

// Adapter is the capability a delivery channel implements. Send may return an
// error for unexpected failures; the dispatcher converts those into failed
// DeliveryResults so one channel's failure never interrupts the others.
type Adapter interface {
	// Name returns the channel name the adapter registers under.
	Name() string

	// Send attempts one delivery.
	Send(ctx context.Context, payload Payload) (DeliveryResult, error)

	// Verify checks the adapter's transport is reachable and configured.
	Verify(ctx context.Context) error
}
