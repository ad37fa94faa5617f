package channel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FeedMessage is one in-app notification pushed to live subscribers.
type FeedMessage struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}

// Subscription is one subscriber's view of a user's feed. Receive the channel
// until it closes; Close is idempotent.
type Subscription struct {
	C      <-chan FeedMessage
	feed   *Feed
	userID string
	id     string
	ch     chan FeedMessage
	once   sync.Once
}

// Close detaches the subscription from the feed and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.feed.unsubscribe(s.userID, s.id)
		close(s.ch)
	})
}

// Feed fans in-app notifications out to per-user subscribers. Delivery is
// best effort: a subscriber whose buffer is full misses the message rather
// than blocking the dispatch loop. Transports (SSE, WebSocket) subscribe and
// stream; the persisted notification record remains the source of truth.
type Feed struct {
	subscribers map[string]map[string]*Subscription // userID -> subscription id -> subscription
	bufferSize  int
	mu          sync.RWMutex
}

// NewFeed creates a feed whose subscriber channels buffer the given number of
// messages.
func NewFeed(bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Feed{
		subscribers: make(map[string]map[string]*Subscription),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a subscriber for the user's notifications. The
// subscription closes itself when ctx is done.
func (f *Feed) Subscribe(ctx context.Context, userID string) *Subscription {
	ch := make(chan FeedMessage, f.bufferSize)
	sub := &Subscription{
		C:      ch,
		feed:   f,
		userID: userID,
		id:     uuid.New().String(),
		ch:     ch,
	}

	f.mu.Lock()
	if f.subscribers[userID] == nil {
		f.subscribers[userID] = make(map[string]*Subscription)
	}
	f.subscribers[userID][sub.id] = sub
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub
}

// Publish delivers the message to every live subscriber of the recipient.
// Sends happen under the read lock so a concurrent Close cannot close a
// channel mid-send; Close detaches under the write lock first.
func (f *Feed) Publish(ctx context.Context, msg FeedMessage) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.subscribers[msg.UserID] {
		select {
		case sub.ch <- msg:
		default:
			// Slow subscriber; drop rather than block dispatch.
		}
	}
}

func (f *Feed) unsubscribe(userID, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if subs, ok := f.subscribers[userID]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(f.subscribers, userID)
		}
	}
}
