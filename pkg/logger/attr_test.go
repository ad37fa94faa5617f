package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestUserID(t *testing.T) {
	attr := logger.UserID("user-1")
	require.Equal(t, "user_id", attr.Key)
	assert.Equal(t, "user-1", attr.Value.Any())

	empty := logger.UserID(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestNotificationID(t *testing.T) {
	attr := logger.NotificationID("n-1")
	require.Equal(t, "notification_id", attr.Key)
	assert.Equal(t, "n-1", attr.Value.Any())
}

func TestTemplateID(t *testing.T) {
	attr := logger.TemplateID("tpl-1")
	require.Equal(t, "template_id", attr.Key)
	assert.Equal(t, "tpl-1", attr.Value.Any())
}

func TestChannel(t *testing.T) {
	attr := logger.Channel("email")
	require.Equal(t, "channel", attr.Key)
	assert.Equal(t, "email", attr.Value.String())
}

func TestNotificationType(t *testing.T) {
	attr := logger.NotificationType("system")
	require.Equal(t, "notification_type", attr.Key)
	assert.Equal(t, "system", attr.Value.String())
}

func TestLocale(t *testing.T) {
	attr := logger.Locale("es-MX")
	require.Equal(t, "locale", attr.Key)
	assert.Equal(t, "es-MX", attr.Value.String())
}
