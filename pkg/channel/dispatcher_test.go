package channel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/channel"
)

// MockAdapter for testing Dispatcher
type MockAdapter struct {
	mock.Mock
	name string
}

func (m *MockAdapter) Name() string {
	return m.name
}

func (m *MockAdapter) Send(ctx context.Context, payload channel.Payload) (channel.DeliveryResult, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(channel.DeliveryResult), args.Error(1)
}

func (m *MockAdapter) Verify(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type panicAdapter struct{}

func (panicAdapter) Name() string { return "broken" }

func (panicAdapter) Send(context.Context, channel.Payload) (channel.DeliveryResult, error) {
	panic("adapter bug")
}

func (panicAdapter) Verify(context.Context) error { return nil }

func TestDispatcher_Send(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown channel fails non-retryable", func(t *testing.T) {
		t.Parallel()

		d := channel.NewDispatcher(nil)
		result := d.Send(ctx, "sms", channel.Payload{UserID: "user-1"})

		assert.False(t, result.Success)
		assert.Equal(t, "sms", result.Channel)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeChannelNotSupported, result.Error.Code)
		assert.False(t, result.Error.Retryable)
	})

	t.Run("adapter error becomes retryable failure", func(t *testing.T) {
		t.Parallel()

		adapter := &MockAdapter{name: "email"}
		adapter.On("Send", ctx, mock.Anything).
			Return(channel.DeliveryResult{}, errors.New("smtp timeout"))

		d := channel.NewDispatcher([]channel.Adapter{adapter})
		result := d.Send(ctx, "email", channel.Payload{UserID: "user-1"})

		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeChannelSendError, result.Error.Code)
		assert.True(t, result.Error.Retryable)
		assert.Contains(t, result.Error.Message, "smtp timeout")
	})

	t.Run("adapter panic is contained", func(t *testing.T) {
		t.Parallel()

		d := channel.NewDispatcher([]channel.Adapter{panicAdapter{}})
		result := d.Send(ctx, "broken", channel.Payload{UserID: "user-1"})

		assert.False(t, result.Success)
		require.NotNil(t, result.Error)
		assert.Equal(t, channel.CodeChannelSendError, result.Error.Code)
		assert.Contains(t, result.Error.Message, "adapter bug")
	})

	t.Run("fills channel and timestamp on success", func(t *testing.T) {
		t.Parallel()

		adapter := &MockAdapter{name: "email"}
		adapter.On("Send", ctx, mock.Anything).
			Return(channel.DeliveryResult{Success: true, MessageID: "msg-1"}, nil)

		d := channel.NewDispatcher([]channel.Adapter{adapter})
		result := d.Send(ctx, "email", channel.Payload{UserID: "user-1"})

		assert.True(t, result.Success)
		assert.Equal(t, "email", result.Channel)
		assert.Equal(t, "msg-1", result.MessageID)
		assert.WithinDuration(t, time.Now(), result.Timestamp, time.Second)
	})
}

func TestDispatcher_VerifyAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	healthy := &MockAdapter{name: "inApp"}
	healthy.On("Verify", ctx).Return(nil)
	unhealthy := &MockAdapter{name: "email"}
	unhealthy.On("Verify", ctx).Return(errors.New("bad token"))

	d := channel.NewDispatcher([]channel.Adapter{healthy, unhealthy})
	results := d.VerifyAll(ctx)

	assert.Equal(t, map[string]bool{"inApp": true, "email": false}, results)
	assert.ElementsMatch(t, []string{"inApp", "email"}, d.Channels())
}

func TestContentFromFields(t *testing.T) {
	t.Parallel()

	t.Run("in-app content", func(t *testing.T) {
		t.Parallel()

		c := channel.ContentFromFields(channel.InAppChannelName, map[string]any{
			"title":   "Hi",
			"content": "Welcome aboard",
			"badge":   3,
		})

		assert.Equal(t, channel.KindInApp, c.Kind)
		require.NotNil(t, c.InApp)
		assert.Equal(t, "Hi", c.InApp.Title)
		assert.Equal(t, "Welcome aboard", c.InApp.Body)
		assert.Equal(t, 3, c.Extra["badge"])
	})

	t.Run("email content", func(t *testing.T) {
		t.Parallel()

		c := channel.ContentFromFields(channel.EmailChannelName, map[string]any{
			"subject": "Welcome",
			"body":    "<p>Hi</p>",
			"isHtml":  true,
		})

		assert.Equal(t, channel.KindEmail, c.Kind)
		require.NotNil(t, c.Email)
		assert.Equal(t, "Welcome", c.Email.Subject)
		assert.Equal(t, "<p>Hi</p>", c.Email.Body)
		assert.True(t, c.Email.HTML)
	})

	t.Run("unknown channel is generic", func(t *testing.T) {
		t.Parallel()

		c := channel.ContentFromFields("webhook", map[string]any{"url": "https://example.com"})

		assert.Equal(t, channel.KindGeneric, c.Kind)
		assert.Nil(t, c.InApp)
		assert.Nil(t, c.Email)
		assert.Equal(t, "https://example.com", c.Extra["url"])
	})
}
