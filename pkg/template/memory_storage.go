package template

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	templates map[string]Template // id -> template
	mu        sync.RWMutex
}

// NewMemoryStorage creates a new in-memory template storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		templates: make(map[string]Template),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, t Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[t.ID]; exists {
		return ErrTemplateExists
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.templates[t.ID] = t
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.templates[id]
	if !exists {
		return nil, ErrTemplateNotFound
	}
	return &t, nil
}

func (s *MemoryStorage) FindByType(ctx context.Context, notificationType string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.Type == notificationType && t.Active {
			return &t, nil
		}
	}
	return nil, ErrTemplateNotFound
}

func (s *MemoryStorage) List(ctx context.Context) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]Template, 0, len(s.templates))
	for _, t := range s.templates {
		templates = append(templates, t)
	}
	return templates, nil
}

func (s *MemoryStorage) Update(ctx context.Context, id string, update Update) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.templates[id]
	if !exists {
		return nil, ErrTemplateNotFound
	}

	t = update.merged(t)
	t.UpdatedAt = time.Now()
	s.templates[id] = t
	return &t, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[id]; !exists {
		return ErrTemplateNotFound
	}
	delete(s.templates, id)
	return nil
}
