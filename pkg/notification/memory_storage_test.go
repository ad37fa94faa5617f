package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/notification"
)

func storedNotification(id, userID string) notification.Notification {
	return notification.Notification{
		ID:       id,
		UserID:   userID,
		Type:     "system",
		Priority: notification.PriorityNormal,
		Status:   notification.StatusPending,
		Channels: map[string]notification.ChannelState{
			"inApp": {Status: notification.DeliveryPending},
		},
	}
}

func TestMemoryStorage_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := notification.NewMemoryStorage()

	t.Run("stores and stamps timestamps", func(t *testing.T) {
		require.NoError(t, storage.Create(ctx, storedNotification("n-1", "user-1")))

		got, err := storage.Get(ctx, "n-1")
		require.NoError(t, err)
		assert.False(t, got.CreatedAt.IsZero())
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("rejects missing id and user", func(t *testing.T) {
		err := storage.Create(ctx, notification.Notification{UserID: "user-1"})
		assert.ErrorIs(t, err, notification.ErrIDRequired)

		err = storage.Create(ctx, notification.Notification{ID: "n-x"})
		assert.ErrorIs(t, err, notification.ErrUserIDRequired)
	})

	t.Run("enforces idempotency key uniqueness", func(t *testing.T) {
		first := storedNotification("n-2", "user-1")
		first.IdempotencyKey = "key-1"
		require.NoError(t, storage.Create(ctx, first))

		second := storedNotification("n-3", "user-1")
		second.IdempotencyKey = "key-1"
		err := storage.Create(ctx, second)
		assert.ErrorIs(t, err, notification.ErrDuplicateIdempotencyKey)

		got, err := storage.FindByIdempotencyKey(ctx, "key-1")
		require.NoError(t, err)
		assert.Equal(t, "n-2", got.ID)
	})

	t.Run("empty keys never collide", func(t *testing.T) {
		require.NoError(t, storage.Create(ctx, storedNotification("n-4", "user-1")))
		require.NoError(t, storage.Create(ctx, storedNotification("n-5", "user-1")))
	})
}

func TestMemoryStorage_ChannelStateAndStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := notification.NewMemoryStorage()
	require.NoError(t, storage.Create(ctx, storedNotification("n-1", "user-1")))

	sentAt := time.Now()
	require.NoError(t, storage.SetChannelState(ctx, "n-1", "inApp", notification.ChannelState{
		Status:    notification.DeliverySent,
		MessageID: "n-1",
		SentAt:    &sentAt,
	}))
	require.NoError(t, storage.SetStatus(ctx, "n-1", notification.StatusSent))

	got, err := storage.Get(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, notification.StatusSent, got.Status)
	assert.Equal(t, notification.DeliverySent, got.Channels["inApp"].Status)
	require.NotNil(t, got.Channels["inApp"].SentAt)

	err = storage.SetStatus(ctx, "missing", notification.StatusSent)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
}

func TestMemoryStorage_ListAndRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := notification.NewMemoryStorage()

	for _, id := range []string{"n-1", "n-2", "n-3"} {
		n := storedNotification(id, "user-1")
		require.NoError(t, storage.Create(ctx, n))
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, storage.Create(ctx, storedNotification("other", "user-2")))

	t.Run("lists newest first", func(t *testing.T) {
		got, err := storage.List(ctx, "user-1", notification.ListOptions{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "n-3", got[0].ID)
		assert.Equal(t, "n-1", got[2].ID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := storage.List(ctx, "user-1", notification.ListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "n-2", got[0].ID)
	})

	t.Run("mark read and filter unread", func(t *testing.T) {
		require.NoError(t, storage.MarkRead(ctx, "n-1", time.Now()))

		unread, err := storage.List(ctx, "user-1", notification.ListOptions{OnlyUnread: true})
		require.NoError(t, err)
		assert.Len(t, unread, 2)

		count, err := storage.Count(ctx, "user-1", true)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("mark all read", func(t *testing.T) {
		updated, err := storage.MarkAllRead(ctx, "user-1", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 2, updated)

		count, err := storage.Count(ctx, "user-1", true)
		require.NoError(t, err)
		assert.Zero(t, count)

		// Other users' records are untouched.
		count, err = storage.Count(ctx, "user-2", true)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestMemoryStorage_AttachContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage := notification.NewMemoryStorage()
	require.NoError(t, storage.Create(ctx, storedNotification("n-1", "user-1")))

	require.NoError(t, storage.AttachContent(ctx, "n-1", "Hello", "World"))

	got, err := storage.Get(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Content)
}
