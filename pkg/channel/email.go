package channel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notifykit/notifykit/pkg/config"
	"github.com/notifykit/notifykit/pkg/logger"
)

// EmailChannelName is the registry name of the email adapter.
const EmailChannelName = "email"

// SendEmailParams represents one outbound email.
type SendEmailParams struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
	Tag     string `json:"tag,omitempty"`
}

// EmailSender is the transport capability behind the email adapter. SendEmail
// returns the provider's message id on success.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) (string, error)

	// Verify checks the transport is reachable and configured.
	Verify(ctx context.Context) error
}

// EmailAdapter delivers notifications through an EmailSender. The recipient
// address is resolved from the payload metadata.
type EmailAdapter struct {
	sender EmailSender
	logger *slog.Logger
}

// EmailOption configures an EmailAdapter.
type EmailOption func(*EmailAdapter)

// WithEmailLogger sets the logger for the adapter.
func WithEmailLogger(logger *slog.Logger) EmailOption {
	return func(a *EmailAdapter) {
		a.logger = logger
	}
}

// NewEmailAdapter creates the email channel adapter.
func NewEmailAdapter(sender EmailSender, opts ...EmailOption) *EmailAdapter {
	a := &EmailAdapter{
		sender: sender,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewEmailAdapterFromEnv creates an email adapter with a Postmark sender
// configured from the environment.
func NewEmailAdapterFromEnv(opts ...EmailOption) (*EmailAdapter, error) {
	var cfg EmailConfig
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		return nil, err
	}
	return NewEmailAdapter(sender, opts...), nil
}

func (a *EmailAdapter) Name() string {
	return EmailChannelName
}

func (a *EmailAdapter) Send(ctx context.Context, payload Payload) (DeliveryResult, error) {
	if payload.Content.Email == nil {
		return a.failure(CodeEmailSendFailed, "missing email content", false), nil
	}

	recipient, _ := payload.Metadata[MetaEmail].(string)
	if recipient == "" {
		return a.failure(CodeEmailNoRecipient,
			fmt.Sprintf("no recipient address for user %s", payload.UserID), false), nil
	}

	tag, _ := payload.Metadata[MetaNotificationType].(string)

	messageID, err := a.sender.SendEmail(ctx, SendEmailParams{
		To:      recipient,
		Subject: payload.Content.Email.Subject,
		Body:    payload.Content.Email.Body,
		HTML:    payload.Content.Email.HTML,
		Tag:     tag,
	})
	if err != nil {
		a.logger.LogAttrs(ctx, slog.LevelError, "failed to send email",
			logger.UserID(payload.UserID),
			logger.Error(err),
		)
		return a.failure(CodeEmailSendFailed, err.Error(), true), nil
	}

	return DeliveryResult{
		Success:   true,
		Channel:   EmailChannelName,
		MessageID: messageID,
		Timestamp: time.Now(),
		Metadata:  map[string]any{"recipient": recipient},
	}, nil
}

func (a *EmailAdapter) Verify(ctx context.Context) error {
	return a.sender.Verify(ctx)
}

func (a *EmailAdapter) failure(code, message string, retryable bool) DeliveryResult {
	return DeliveryResult{
		Success:   false,
		Channel:   EmailChannelName,
		Timestamp: time.Now(),
		Error: &DeliveryError{
			Code:      code,
			Message:   message,
			Retryable: retryable,
		},
	}
}
