package preference

import "errors"

var (
	// ErrPreferencesNotFound is returned when no preference record exists for a user.
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrPreferencesExist is returned when creating a record for a user that already has one.
	ErrPreferencesExist = errors.New("preferences already exist for user")

	// ErrUserIDRequired is returned when a record is created without a user ID.
	ErrUserIDRequired = errors.New("user ID is required")
)
