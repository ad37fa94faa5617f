package channel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/channel"
)

// MockEmailSender for testing EmailAdapter
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params channel.SendEmailParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockEmailSender) Verify(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func emailPayload(recipient string) channel.Payload {
	p := channel.Payload{
		UserID: "user-1",
		Content: channel.Content{
			Kind:  channel.KindEmail,
			Email: &channel.EmailContent{Subject: "Welcome", Body: "<p>Hi</p>", HTML: true},
		},
		Metadata: map[string]any{
			channel.MetaNotificationType: "system",
		},
	}
	if recipient != "" {
		p.Metadata[channel.MetaEmail] = recipient
	}
	return p
}

func TestEmailAdapter_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sends through the sender", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		sender.On("SendEmail", ctx, channel.SendEmailParams{
			To:      "ana@example.com",
			Subject: "Welcome",
			Body:    "<p>Hi</p>",
			HTML:    true,
			Tag:     "system",
		}).Return("pm-123", nil)

		adapter := channel.NewEmailAdapter(sender)
		result, err := adapter.Send(ctx, emailPayload("ana@example.com"))

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "pm-123", result.MessageID)
		assert.Equal(t, "ana@example.com", result.Metadata["recipient"])
		sender.AssertExpectations(t)
	})

	t.Run("missing recipient fails non-retryable", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		adapter := channel.NewEmailAdapter(sender)
		result, err := adapter.Send(ctx, emailPayload(""))

		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeEmailNoRecipient, result.Error.Code)
		assert.False(t, result.Error.Retryable)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("missing content fails non-retryable", func(t *testing.T) {
		t.Parallel()

		adapter := channel.NewEmailAdapter(new(MockEmailSender))
		result, err := adapter.Send(ctx, channel.Payload{UserID: "user-1"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeEmailSendFailed, result.Error.Code)
		assert.False(t, result.Error.Retryable)
	})

	t.Run("transport failure fails retryable", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		sender.On("SendEmail", ctx, mock.Anything).Return("", errors.New("rate limited"))

		adapter := channel.NewEmailAdapter(sender)
		result, err := adapter.Send(ctx, emailPayload("ana@example.com"))

		require.NoError(t, err)
		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeEmailSendFailed, result.Error.Code)
		assert.True(t, result.Error.Retryable)
		assert.Contains(t, result.Error.Message, "rate limited")
	})

	t.Run("verify delegates to the sender", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		sender.On("Verify", ctx).Return(errors.New("invalid token"))

		adapter := channel.NewEmailAdapter(sender)
		assert.Error(t, adapter.Verify(ctx))
	})
}
