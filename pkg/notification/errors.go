package notification

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification lookup fails.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrDuplicateIdempotencyKey is returned by Storage.Create when another
	// notification already holds the idempotency key. The orchestrator
	// recovers by re-reading and returning the winner's record.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already in use")

	// ErrIDRequired is returned when a notification is stored without an ID.
	ErrIDRequired = errors.New("notification ID is required")

	// ErrUserIDRequired is returned when a notification is stored without a user ID.
	ErrUserIDRequired = errors.New("user ID is required")
)
