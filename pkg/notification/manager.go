package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/notifykit/notifykit/pkg/channel"
	"github.com/notifykit/notifykit/pkg/logger"
	"github.com/notifykit/notifykit/pkg/template"
)

// ChannelResolver computes the channels a notification may be delivered
// through, loading (and lazily creating) the user's preferences.
type ChannelResolver interface {
	Resolve(ctx context.Context, userID, notificationType string, requested []string) ([]string, error)
}

// Renderer resolves a template into per-channel rendered field sets.
type Renderer interface {
	Render(ctx context.Context, req template.RenderRequest) (template.Rendered, error)
}

// Sender routes one delivery payload to the adapter for the channel name.
// It never returns an error; failures are carried in the DeliveryResult.
type Sender interface {
	Send(ctx context.Context, channelName string, payload channel.Payload) channel.DeliveryResult
}

// Manager orchestrates the notification pipeline: idempotency enforcement,
// preference-based channel selection, template rendering, persistence and the
// detached per-channel dispatch.
type Manager struct {
	storage  Storage
	resolver ChannelResolver
	renderer Renderer
	sender   Sender
	pool     *dispatchPool
	logger   *slog.Logger

	workers int
	buffer  int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDispatchWorkers sets how many notifications may be dispatching
// concurrently. Within one notification the channels are always sent
// sequentially. Default is 4.
func WithDispatchWorkers(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithDispatchBuffer sets the dispatch queue depth. Creation blocks when the
// queue is full. Default is 64.
func WithDispatchBuffer(n int) ManagerOption {
	return func(m *Manager) {
		if n >= 0 {
			m.buffer = n
		}
	}
}

// NewManager creates the notification orchestrator.
func NewManager(storage Storage, resolver ChannelResolver, renderer Renderer, sender Sender, opts ...ManagerOption) *Manager {
	m := &Manager{
		storage:  storage,
		resolver: resolver,
		renderer: renderer,
		sender:   sender,
		logger:   slog.Default(),
		workers:  4,
		buffer:   64,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.pool = newDispatchPool(m.workers, m.buffer, m.dispatch)
	return m
}

// Create runs the synchronous creation path and hands delivery to the
// dispatch pool. The returned result reflects the notification as persisted:
// pending on every allowed channel, or partial with no channels when the
// user's preferences allow none. Delivery outcomes are observed by reading
// the notification back later.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*Result, error) {
	opts := req.Options
	if opts == nil {
		opts = &CreateOptions{}
	}

	if opts.IdempotencyKey != "" {
		existing, err := m.storage.FindByIdempotencyKey(ctx, opts.IdempotencyKey)
		if err == nil {
			return mapResult(existing), nil
		}
		if !errors.Is(err, ErrNotificationNotFound) {
			return nil, err
		}
	}

	allowed, err := m.resolver.Resolve(ctx, req.UserID, req.Type, req.Channels)
	if err != nil {
		return nil, err
	}

	if len(allowed) == 0 {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "no channels enabled",
			logger.UserID(req.UserID),
			logger.NotificationType(req.Type),
		)
		// Nothing to render or dispatch; the record is terminal at creation.
		n := m.newNotification(req, *opts, StatusPartial, map[string]ChannelState{})
		return m.persist(ctx, n, *opts)
	}

	rendered, err := m.renderer.Render(ctx, template.RenderRequest{
		TemplateID: req.TemplateID,
		Data:       req.Data,
		Locale:     req.Locale,
		Channels:   allowed,
	})
	if err != nil {
		return nil, err
	}

	channels := make(map[string]ChannelState, len(allowed))
	for _, name := range allowed {
		channels[name] = ChannelState{Status: DeliveryPending}
	}

	n := m.newNotification(req, *opts, StatusPending, channels)

	// Denormalize in-app content onto the record so clients can read it
	// without a template round-trip.
	if fields, ok := rendered[channel.InAppChannelName]; ok {
		n.Title, _ = fields["title"].(string)
		n.Content, _ = fields["content"].(string)
	}

	result, err := m.persist(ctx, n, *opts)
	if err != nil {
		return nil, err
	}

	// A duplicate-key recovery returns the winner's record; only the writer
	// that actually created the record dispatches.
	if result.ID == n.ID {
		m.pool.enqueue(dispatchJob{notification: n, rendered: rendered, channels: allowed})
	}

	return result, nil
}

// persist stores the notification, recovering from a racing duplicate
// idempotency-key insert by re-reading and returning the winner's record.
func (m *Manager) persist(ctx context.Context, n Notification, opts CreateOptions) (*Result, error) {
	err := m.storage.Create(ctx, n)
	if err == nil {
		stored, getErr := m.storage.Get(ctx, n.ID)
		if getErr != nil {
			return nil, getErr
		}
		return mapResult(stored), nil
	}

	if errors.Is(err, ErrDuplicateIdempotencyKey) && opts.IdempotencyKey != "" {
		winner, findErr := m.storage.FindByIdempotencyKey(ctx, opts.IdempotencyKey)
		if findErr == nil {
			return mapResult(winner), nil
		}
	}

	return nil, err
}

func (m *Manager) newNotification(req CreateRequest, opts CreateOptions, status Status, channels map[string]ChannelState) Notification {
	priority := opts.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	return Notification{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		Type:           req.Type,
		TemplateID:     req.TemplateID,
		Data:           req.Data,
		Priority:       priority,
		Status:         status,
		Channels:       channels,
		ExpireAt:       opts.ExpireAt,
		IdempotencyKey: opts.IdempotencyKey,
	}
}

// dispatch delivers one notification to its allowed channels, one channel at
// a time, then folds the settled states into the aggregate status. Failures
// of individual channels are recorded as data; a storage failure mid-loop
// forces the overall status to failed and is logged, never surfaced to the
// creator whose response was already returned.
func (m *Manager) dispatch(ctx context.Context, job dispatchJob) {
	n := job.notification

	for _, name := range job.channels {
		fields, ok := job.rendered[name]
		if !ok {
			// Template defines nothing for this channel; nothing to send.
			continue
		}

		result := m.sender.Send(ctx, name, channel.Payload{
			UserID:   n.UserID,
			Content:  channel.ContentFromFields(name, fields),
			Metadata: m.payloadMetadata(n),
		})

		state := channelStateFromResult(result)
		if err := m.storage.SetChannelState(ctx, n.ID, name, state); err != nil {
			m.failDispatch(ctx, n.ID, err)
			return
		}
	}

	updated, err := m.storage.Get(ctx, n.ID)
	if err != nil {
		m.failDispatch(ctx, n.ID, err)
		return
	}

	status := AggregateStatus(updated.Channels)
	if err := m.storage.SetStatus(ctx, n.ID, status); err != nil {
		m.failDispatch(ctx, n.ID, err)
		return
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
		logger.NotificationID(n.ID),
		logger.UserID(n.UserID),
		slog.String("status", string(status)),
	)
}

func (m *Manager) payloadMetadata(n Notification) map[string]any {
	metadata := map[string]any{
		channel.MetaNotificationID:   n.ID,
		channel.MetaNotificationType: n.Type,
	}
	// The recipient address, when the caller provided one in the render data.
	if email, ok := n.Data["email"].(string); ok && email != "" {
		metadata[channel.MetaEmail] = email
	}
	return metadata
}

// failDispatch forces the aggregate status to failed after a dispatch-loop
// error. Best effort: the original error is logged either way.
func (m *Manager) failDispatch(ctx context.Context, id string, err error) {
	m.logger.LogAttrs(ctx, slog.LevelError, "dispatch failed",
		logger.NotificationID(id),
		logger.Error(err),
	)
	if setErr := m.storage.SetStatus(ctx, id, StatusFailed); setErr != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "failed to record dispatch failure",
			logger.NotificationID(id),
			logger.Error(setErr),
		)
	}
}

func channelStateFromResult(result channel.DeliveryResult) ChannelState {
	state := ChannelState{
		MessageID: result.MessageID,
		Metadata:  result.Metadata,
	}
	if result.Success {
		state.Status = DeliverySent
		sentAt := result.Timestamp
		state.SentAt = &sentAt
	} else {
		state.Status = DeliveryFailed
		if result.Error != nil {
			state.Error = result.Error.Message
		}
	}
	return state
}

// Get retrieves a notification by ID.
func (m *Manager) Get(ctx context.Context, id string) (*Notification, error) {
	return m.storage.Get(ctx, id)
}

// List returns a user's notifications, newest first.
func (m *Manager) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	return m.storage.List(ctx, userID, opts)
}

// MarkRead stamps a notification as read.
func (m *Manager) MarkRead(ctx context.Context, id string) (*Notification, error) {
	if err := m.storage.MarkRead(ctx, id, time.Now()); err != nil {
		return nil, err
	}
	return m.storage.Get(ctx, id)
}

// MarkAllRead stamps every unread notification of the user as read and
// returns the number updated.
func (m *Manager) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return m.storage.MarkAllRead(ctx, userID, time.Now())
}

// CountUnread returns the user's unread notification count.
func (m *Manager) CountUnread(ctx context.Context, userID string) (int, error) {
	return m.storage.Count(ctx, userID, true)
}

// Drain blocks until every queued dispatch has finished, or ctx expires.
func (m *Manager) Drain(ctx context.Context) error {
	return m.pool.drain(ctx)
}

// Close drains outstanding dispatches and stops the dispatch workers.
// The manager must not be used after Close.
func (m *Manager) Close(ctx context.Context) error {
	return m.pool.close(ctx)
}
