package notification

import "time"

// CreateOptions carries the optional knobs of a creation request.
type CreateOptions struct {
	Priority       Priority   `json:"priority,omitempty"`
	ExpireAt       *time.Time `json:"expire_at,omitempty"`
	IdempotencyKey string     `json:"idempotency_key,omitempty"`
}

// CreateRequest is one logical notification delivery request. Channels
// optionally narrows the channels to deliver through; the user's preferences
// always apply on top. Locale selects template translations.
type CreateRequest struct {
	UserID     string         `json:"user_id"`
	Type       string         `json:"type"`
	TemplateID string         `json:"template_id"`
	Data       map[string]any `json:"data,omitempty"`
	Channels   []string       `json:"channels,omitempty"`
	Locale     string         `json:"locale,omitempty"`
	Options    *CreateOptions `json:"options,omitempty"`
}

// ChannelResult is the caller-facing view of one channel's delivery state.
type ChannelResult struct {
	Status    DeliveryStatus `json:"status"`
	MessageID string         `json:"message_id,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// ResultMetadata carries record timestamps and the notification type.
type ResultMetadata struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Type      string    `json:"type"`
}

// Result is the caller-facing view of a notification returned by the
// creation path. The caller observes the notification as pending; the
// eventual sent/failed/partial resolution is read back later.
type Result struct {
	ID       string                   `json:"id"`
	Status   Status                   `json:"status"`
	Channels map[string]ChannelResult `json:"channels"`
	Metadata ResultMetadata           `json:"metadata"`
}

// mapResult converts a stored notification into its caller-facing view.
func mapResult(n *Notification) *Result {
	channels := make(map[string]ChannelResult, len(n.Channels))
	for name, state := range n.Channels {
		channels[name] = ChannelResult{
			Status:    state.Status,
			MessageID: state.MessageID,
			Error:     state.Error,
		}
	}

	return &Result{
		ID:       n.ID,
		Status:   n.Status,
		Channels: channels,
		Metadata: ResultMetadata{
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			Type:      n.Type,
		},
	}
}
