package preference

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	records map[string]Preferences // userID -> record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory preference storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]Preferences),
	}
}

func (s *MemoryStorage) FindByUserID(ctx context.Context, userID string) (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, exists := s.records[userID]
	if !exists {
		return nil, ErrPreferencesNotFound
	}

	copied := clonePreferences(prefs)
	return &copied, nil
}

func (s *MemoryStorage) Create(ctx context.Context, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prefs.UserID == "" {
		return ErrUserIDRequired
	}
	if _, exists := s.records[prefs.UserID]; exists {
		return ErrPreferencesExist
	}

	now := time.Now()
	if prefs.CreatedAt.IsZero() {
		prefs.CreatedAt = now
	}
	prefs.UpdatedAt = now

	s.records[prefs.UserID] = clonePreferences(prefs)
	return nil
}

func (s *MemoryStorage) Upsert(ctx context.Context, userID string, update Update) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, exists := s.records[userID]
	if !exists {
		prefs = DefaultPreferences(userID)
		prefs.CreatedAt = time.Now()
	}

	for name, enabled := range update.Channels {
		prefs.Channels[name] = enabled
	}
	for name, tp := range update.Types {
		prefs.Types[name] = tp
	}
	prefs.UpdatedAt = time.Now()

	s.records[userID] = prefs

	copied := clonePreferences(prefs)
	return &copied, nil
}

func (s *MemoryStorage) RemoveType(ctx context.Context, userID, notificationType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, exists := s.records[userID]
	if !exists {
		return ErrPreferencesNotFound
	}

	delete(prefs.Types, notificationType)
	prefs.UpdatedAt = time.Now()
	s.records[userID] = prefs
	return nil
}

// clonePreferences copies the record's maps so callers cannot mutate stored data.
func clonePreferences(p Preferences) Preferences {
	p.Channels = maps.Clone(p.Channels)
	p.Types = maps.Clone(p.Types)
	return p
}
