package template

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notifykit/notifykit/pkg/logger"
)

// Service manages templates and renders them per channel and locale.
// It owns the engine registry and the process-wide render cache, so CRUD
// operations can invalidate compiled entries synchronously.
type Service struct {
	storage       Storage
	engines       *Registry
	cache         *renderCache
	defaultEngine string
	logger        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaultEngine overrides the engine used for content without an
// engineType field.
func WithDefaultEngine(name string) ServiceOption {
	return func(s *Service) {
		if name != "" {
			s.defaultEngine = name
		}
	}
}

// WithEngines replaces the default engine registry.
func WithEngines(registry *Registry) ServiceOption {
	return func(s *Service) {
		if registry != nil {
			s.engines = registry
		}
	}
}

// NewService creates a template service backed by the given storage.
// The default registry carries the handlebars engine and its hbs alias.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage:       storage,
		engines:       NewRegistry(NewHandlebarsEngine(), NewHbsEngine()),
		cache:         newRenderCache(),
		defaultEngine: DefaultEngineName,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates and stores a new template. Placeholders referencing
// variables outside the declared set fail here, not at render time.
func (s *Service) Create(ctx context.Context, t Template) (*Template, error) {
	if err := validateVariables(t); err != nil {
		return nil, err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	if err := s.storage.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "template created",
		logger.TemplateID(t.ID),
		slog.String("type", t.Type),
	)

	return &t, nil
}

// Get retrieves a template by ID.
func (s *Service) Get(ctx context.Context, id string) (*Template, error) {
	return s.storage.Get(ctx, id)
}

// FindByType retrieves the active template for a notification type.
func (s *Service) FindByType(ctx context.Context, notificationType string) (*Template, error) {
	return s.storage.FindByType(ctx, notificationType)
}

// List returns all stored templates.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.storage.List(ctx)
}

// Update validates the post-update template, applies the partial update and
// purges the compiled cache entries for the template.
func (s *Service) Update(ctx context.Context, id string, update Update) (*Template, error) {
	if update.Channels != nil || update.Variables != nil || update.Translations != nil {
		current, err := s.storage.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := validateVariables(update.merged(*current)); err != nil {
			return nil, err
		}
	}

	updated, err := s.storage.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.cache.invalidateTemplate(id)

	s.logger.LogAttrs(ctx, slog.LevelInfo, "template updated",
		logger.TemplateID(id),
	)

	return updated, nil
}

// Delete removes a template and purges its compiled cache entries.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidateTemplate(id)
	return nil
}
