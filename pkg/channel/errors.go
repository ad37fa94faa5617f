package channel

import "errors"

// Delivery error codes carried in DeliveryError.Code.
const (
	// CodeChannelNotSupported marks sends to a channel with no registered adapter. Not retryable.
	CodeChannelNotSupported = "CHANNEL_NOT_SUPPORTED"
	// CodeChannelSendError marks unexpected adapter failures caught at the dispatcher boundary. Retryable.
	CodeChannelSendError = "CHANNEL_SEND_ERROR"
	// CodeEmailSendFailed marks transport failures inside the email adapter. Retryable.
	CodeEmailSendFailed = "EMAIL_SEND_FAILED"
	// CodeEmailNoRecipient marks email payloads without a resolvable recipient address. Not retryable.
	CodeEmailNoRecipient = "EMAIL_NO_RECIPIENT"
	// CodeInAppSendFailed marks persistence failures inside the in-app adapter. Retryable.
	CodeInAppSendFailed = "IN_APP_SEND_FAILED"
)

var (
	// ErrInvalidConfig is returned when an adapter is constructed with incomplete configuration.
	ErrInvalidConfig = errors.New("invalid channel adapter config")

	// ErrVerifyFailed is returned when an adapter's transport check fails.
	ErrVerifyFailed = errors.New("channel verification failed")
)
