package channel

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// EmailConfig holds the Postmark sender configuration.
type EmailConfig struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
}

// PostmarkSender sends email through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
	config EmailConfig
}

// NewPostmarkSender creates a Postmark-backed email sender. All tokens are
// required so a misconfigured deployment fails at startup rather than on the
// first send.
func NewPostmarkSender(cfg EmailConfig) (*PostmarkSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}

	return &PostmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// SendEmail implements EmailSender using Postmark.
func (s *PostmarkSender) SendEmail(ctx context.Context, params SendEmailParams) (string, error) {
	msg := postmark.Email{
		From:    s.config.SenderEmail,
		ReplyTo: s.config.ReplyToEmail,
		To:      params.To,
		Subject: params.Subject,
		Tag:     params.Tag,
	}
	if params.HTML {
		msg.HTMLBody = params.Body
	} else {
		msg.TextBody = params.Body
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("postmark send failed: %w", err)
	}
	if resp.ErrorCode > 0 {
		return "", fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	return resp.MessageID, nil
}

// Verify checks the server token against the Postmark API.
func (s *PostmarkSender) Verify(ctx context.Context) error {
	if _, err := s.client.GetCurrentServer(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrVerifyFailed, err)
	}
	return nil
}
