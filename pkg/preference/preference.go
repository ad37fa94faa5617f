package preference

import "time"

// TypePreference controls delivery for a single notification type.
// Channels narrows the channel universe for the type; an empty slice means
// the user's channel toggles alone decide.
type TypePreference struct {
	Enabled  bool     `json:"enabled" bson:"enabled"`
	Channels []string `json:"channels" bson:"channels"`
}

// Preferences is the per-user delivery preference record.
// Channels maps channel name to an enabled flag; Types holds per-type overrides.
type Preferences struct {
	UserID    string                    `json:"user_id" bson:"userId"`
	Channels  map[string]bool           `json:"channels" bson:"channels"`
	Types     map[string]TypePreference `json:"types" bson:"types"`
	CreatedAt time.Time                 `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time                 `json:"updated_at" bson:"updatedAt"`
}

// Well-known channel names. Adapters may register under any name; these two
// are the defaults every new preference record starts with.
const (
	ChannelInApp = "inApp"
	ChannelEmail = "email"
)

// Default notification types seeded into new preference records.
const (
	TypeSystem    = "system"
	TypeMarketing = "marketing"
)

// DefaultPreferences returns the preference record created lazily on first
// access: both channels enabled, system notifications on every channel,
// marketing restricted to email.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID: userID,
		Channels: map[string]bool{
			ChannelInApp: true,
			ChannelEmail: true,
		},
		Types: map[string]TypePreference{
			TypeSystem: {
				Enabled:  true,
				Channels: []string{ChannelInApp, ChannelEmail},
			},
			TypeMarketing: {
				Enabled:  true,
				Channels: []string{ChannelEmail},
			},
		},
	}
}
