// Package preference stores per-user delivery preferences and computes the
// channels a notification may be sent through.
//
// A preference record has two layers: channel toggles (is email on at all?)
// and per-type overrides (marketing only by email, security alerts disabled).
// Records are created lazily with DefaultPreferences on first access, so a
// user always has an effective preference set.
//
// The resolution rules live in AllowedChannels, a pure function the
// notification orchestrator calls before rendering:
//
//	allowed := preference.AllowedChannels(prefs, "order_confirmation", []string{"inApp", "email"})
//
// Storage is an interface with in-memory and MongoDB implementations.
package preference
