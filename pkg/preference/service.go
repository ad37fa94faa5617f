package preference

import (
	"context"
	"log/slog"

	"github.com/notifykit/notifykit/pkg/logger"
)

// Service exposes preference management on top of a Storage.
// Reading goes through the Resolver so records are lazily created.
type Service struct {
	storage  Storage
	resolver *Resolver
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a preference service backed by the given storage.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.resolver = NewResolver(storage, WithResolverLogger(s.logger))
	return s
}

// Resolver returns the resolver sharing this service's storage.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Get returns the user's preference record, creating defaults on first access.
func (s *Service) Get(ctx context.Context, userID string) (*Preferences, error) {
	return s.resolver.FindOrCreate(ctx, userID)
}

// Update applies a partial preference update and returns the updated record.
func (s *Service) Update(ctx context.Context, userID string, update Update) (*Preferences, error) {
	prefs, err := s.storage.Upsert(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "preferences updated",
		logger.UserID(userID),
		slog.Int("channel_updates", len(update.Channels)),
		slog.Int("type_updates", len(update.Types)),
	)

	return prefs, nil
}

// RemoveTypePreference drops a per-type override, returning the record to the
// user's channel-level defaults for that type.
func (s *Service) RemoveTypePreference(ctx context.Context, userID, notificationType string) (*Preferences, error) {
	// Ensure the record exists so removal on a fresh user is a no-op rather
	// than a not-found error.
	if _, err := s.resolver.FindOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.storage.RemoveType(ctx, userID, notificationType); err != nil {
		return nil, err
	}

	return s.storage.FindByUserID(ctx, userID)
}
