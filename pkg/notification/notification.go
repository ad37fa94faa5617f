package notification

import "time"

// Status is the aggregate delivery status of a notification.
type Status string

const (
	// StatusPending marks a freshly created notification whose dispatch has not settled.
	StatusPending Status = "pending"
	// StatusSent marks a notification delivered on every channel.
	StatusSent Status = "sent"
	// StatusFailed marks a notification that failed on every channel, or whose
	// dispatch loop aborted.
	StatusFailed Status = "failed"
	// StatusPartial marks mixed per-channel outcomes, or a notification created
	// with no allowed channels at all.
	StatusPartial Status = "partial"
)

// DeliveryStatus is the per-channel delivery state. It only ever moves from
// pending to sent or failed, never back.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Priority represents the notification priority level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// ChannelState is the persisted outcome of one channel's delivery attempt.
type ChannelState struct {
	Status    DeliveryStatus `json:"status" bson:"status"`
	MessageID string         `json:"message_id,omitempty" bson:"messageId,omitempty"`
	Error     string         `json:"error,omitempty" bson:"error,omitempty"`
	SentAt    *time.Time     `json:"sent_at,omitempty" bson:"sentAt,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Notification is one delivery request instance, tracked across one or more
// channels. The Channels keys are fixed at creation to the allowed-channel
// set and never change afterward; only the per-channel states and the
// aggregate status are mutated by dispatch.
type Notification struct {
	ID             string                  `json:"id" bson:"_id"`
	UserID         string                  `json:"user_id" bson:"userId"`
	Type           string                  `json:"type" bson:"type"`
	TemplateID     string                  `json:"template_id" bson:"templateId"`
	Data           map[string]any          `json:"data,omitempty" bson:"data,omitempty"`
	Priority       Priority                `json:"priority" bson:"priority"`
	Status         Status                  `json:"status" bson:"status"`
	Channels       map[string]ChannelState `json:"channels" bson:"channels"`
	Title          string                  `json:"title,omitempty" bson:"title,omitempty"`
	Content        string                  `json:"content,omitempty" bson:"content,omitempty"`
	ReadAt         *time.Time              `json:"read_at,omitempty" bson:"readAt,omitempty"`
	ExpireAt       *time.Time              `json:"expire_at,omitempty" bson:"expireAt,omitempty"`
	IdempotencyKey string                  `json:"idempotency_key,omitempty" bson:"idempotencyKey,omitempty"`
	CreatedAt      time.Time               `json:"created_at" bson:"createdAt"`
	UpdatedAt      time.Time               `json:"updated_at" bson:"updatedAt"`
}

// IsExpired returns true if the notification has passed its expiry timestamp.
func (n *Notification) IsExpired() bool {
	if n.ExpireAt == nil {
		return false
	}
	return time.Now().After(*n.ExpireAt)
}

// IsRead returns true if the notification has been marked read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
