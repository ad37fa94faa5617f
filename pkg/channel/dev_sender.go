package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender implements EmailSender for local development. It saves emails as
// files to a directory instead of sending them through a provider.
type DevSender struct {
	dir string
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// devEmailMetadata is the email envelope saved alongside the body.
type devEmailMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTML      bool   `json:"html"`
	Tag       string `json:"tag,omitempty"`
	MessageID string `json:"message_id"`
}

// SendEmail writes the email body and a JSON envelope to the configured
// directory and returns a generated message id.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create email directory: %w", err)
	}

	now := time.Now()
	messageID := uuid.New().String()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(params.Subject))

	ext := ".txt"
	if params.HTML {
		ext = ".html"
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+ext), []byte(params.Body), 0644); err != nil {
		return "", fmt.Errorf("failed to write email body: %w", err)
	}

	meta, err := json.MarshalIndent(devEmailMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        params.To,
		Subject:   params.Subject,
		HTML:      params.HTML,
		Tag:       params.Tag,
		MessageID: messageID,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal email metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0644); err != nil {
		return "", fmt.Errorf("failed to write email metadata: %w", err)
	}

	return messageID, nil
}

// Verify always succeeds for the development sender.
func (d *DevSender) Verify(ctx context.Context) error {
	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot.
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
