package template

import "context"

// Storage handles template persistence and retrieval.
type Storage interface {
	// Create stores a new template.
	Create(ctx context.Context, t Template) error

	// Get retrieves a template by ID.
	// Returns ErrTemplateNotFound when no template exists.
	Get(ctx context.Context, id string) (*Template, error)

	// FindByType retrieves the active template for a notification type.
	FindByType(ctx context.Context, notificationType string) (*Template, error)

	// List returns all stored templates.
	List(ctx context.Context) ([]Template, error)

	// Update applies a partial update and returns the updated template.
	Update(ctx context.Context, id string, update Update) (*Template, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error
}
