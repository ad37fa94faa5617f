package notification

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	notifications map[string]Notification // id -> notification
	byIdemKey     map[string]string       // idempotency key -> id
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[string]Notification),
		byIdemKey:     make(map[string]string),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		return ErrIDRequired
	}
	if n.UserID == "" {
		return ErrUserIDRequired
	}
	if n.IdempotencyKey != "" {
		if _, exists := s.byIdemKey[n.IdempotencyKey]; exists {
			return ErrDuplicateIdempotencyKey
		}
	}

	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	s.notifications[n.ID] = cloneNotification(n)
	if n.IdempotencyKey != "" {
		s.byIdemKey[n.IdempotencyKey] = n.ID
	}
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, exists := s.notifications[id]
	if !exists {
		return nil, ErrNotificationNotFound
	}

	copied := cloneNotification(n)
	return &copied, nil
}

func (s *MemoryStorage) FindByIdempotencyKey(ctx context.Context, key string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byIdemKey[key]
	if !exists {
		return nil, ErrNotificationNotFound
	}

	copied := cloneNotification(s.notifications[id])
	return &copied, nil
}

func (s *MemoryStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if opts.OnlyUnread && n.IsRead() {
			continue
		}
		filtered = append(filtered, cloneNotification(n))
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start := opts.Offset
	if start > len(filtered) {
		return []Notification{}, nil
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], nil
}

func (s *MemoryStorage) Count(ctx context.Context, userID string, onlyUnread bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if onlyUnread && n.IsRead() {
			continue
		}
		count++
	}
	return count, nil
}

func (s *MemoryStorage) SetChannelState(ctx context.Context, id, channelName string, state ChannelState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[id]
	if !exists {
		return ErrNotificationNotFound
	}

	n.Channels = maps.Clone(n.Channels)
	n.Channels[channelName] = state
	n.UpdatedAt = time.Now()
	s.notifications[id] = n
	return nil
}

func (s *MemoryStorage) SetStatus(ctx context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[id]
	if !exists {
		return ErrNotificationNotFound
	}

	n.Status = status
	n.UpdatedAt = time.Now()
	s.notifications[id] = n
	return nil
}

func (s *MemoryStorage) AttachContent(ctx context.Context, id, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[id]
	if !exists {
		return ErrNotificationNotFound
	}

	n.Title = title
	n.Content = content
	n.UpdatedAt = time.Now()
	s.notifications[id] = n
	return nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[id]
	if !exists {
		return ErrNotificationNotFound
	}

	n.ReadAt = &readAt
	n.UpdatedAt = time.Now()
	s.notifications[id] = n
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, userID string, readAt time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, n := range s.notifications {
		if n.UserID != userID || n.IsRead() {
			continue
		}
		n.ReadAt = &readAt
		n.UpdatedAt = time.Now()
		s.notifications[id] = n
		count++
	}
	return count, nil
}

// cloneNotification copies the record's maps so callers cannot mutate stored data.
func cloneNotification(n Notification) Notification {
	n.Channels = maps.Clone(n.Channels)
	n.Data = maps.Clone(n.Data)
	return n
}
