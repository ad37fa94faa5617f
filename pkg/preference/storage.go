package preference

import "context"

// Storage handles preference persistence. A user has at most one record.
type Storage interface {
	// FindByUserID retrieves the preference record for a user.
	// Returns ErrPreferencesNotFound when no record exists.
	FindByUserID(ctx context.Context, userID string) (*Preferences, error)

	// Create stores a new preference record.
	Create(ctx context.Context, prefs Preferences) error

	// Upsert applies a partial update to the user's record, creating it when
	// missing, and returns the updated record.
	Upsert(ctx context.Context, userID string, update Update) (*Preferences, error)

	// RemoveType removes a per-type override from the user's record.
	RemoveType(ctx context.Context, userID, notificationType string) error
}

// Update is a partial preference update. Nil maps leave the corresponding
// section untouched; entries are merged key by key.
type Update struct {
	Channels map[string]bool
	Types    map[string]TypePreference
}
