package preference

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/notifykit/notifykit/pkg/logger"
)

// AllowedChannels computes the set of channels a notification of the given
// type may be delivered through. Pure function over loaded preference data;
// result order follows the candidate universe, but callers must treat it as
// a set.
//
// Resolution rules:
//  1. A disabled type suppresses delivery entirely, regardless of requested
//     channels.
//  2. The candidate universe is the type's channel list when a type override
//     exists, otherwise every channel the user has a toggle for.
//  3. Candidates are kept only if the user's channel toggle is on.
//  4. A non-empty requested list intersects the result.
func AllowedChannels(p Preferences, notificationType string, requested []string) []string {
	if tp, ok := p.Types[notificationType]; ok && !tp.Enabled {
		return nil
	}

	var candidates []string
	if tp, ok := p.Types[notificationType]; ok {
		candidates = tp.Channels
	} else {
		candidates = make([]string, 0, len(p.Channels))
		for name := range p.Channels {
			candidates = append(candidates, name)
		}
	}

	enabled := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if p.Channels[name] {
			enabled = append(enabled, name)
		}
	}

	if len(requested) > 0 {
		allowed := make([]string, 0, len(requested))
		for _, name := range requested {
			if slices.Contains(enabled, name) {
				allowed = append(allowed, name)
			}
		}
		return allowed
	}

	return enabled
}

// Resolver loads preference records and computes allowed channel sets.
type Resolver struct {
	storage Storage
	logger  *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger for the Resolver.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a preference resolver backed by the given storage.
func NewResolver(storage Storage, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		storage: storage,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindOrCreate returns the user's preference record, lazily creating it with
// defaults on first access. Safe to call repeatedly; losing a create race
// falls back to the winner's record.
func (r *Resolver) FindOrCreate(ctx context.Context, userID string) (*Preferences, error) {
	prefs, err := r.storage.FindByUserID(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, ErrPreferencesNotFound) {
		return nil, err
	}

	created := DefaultPreferences(userID)
	if err := r.storage.Create(ctx, created); err != nil {
		// Another caller may have created the record between the lookup and
		// the insert; the stored record wins.
		if existing, findErr := r.storage.FindByUserID(ctx, userID); findErr == nil {
			return existing, nil
		}
		return nil, err
	}

	r.logger.LogAttrs(ctx, slog.LevelDebug, "created default preferences",
		logger.UserID(userID),
	)

	return &created, nil
}

// Resolve loads the user's preferences and returns the allowed channel set
// for the given notification type and requested channels.
func (r *Resolver) Resolve(ctx context.Context, userID, notificationType string, requested []string) ([]string, error) {
	prefs, err := r.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AllowedChannels(*prefs, notificationType, requested), nil
}
