// Package notification implements the multi-channel notification pipeline.
//
// The Manager orchestrates the full lifecycle of a notification: it enforces
// idempotency keys, resolves the user's allowed channels from preferences,
// renders the template for those channels, persists the record, and hands
// delivery to a background dispatch pool. Creation returns as soon as the
// record is stored; per-channel delivery outcomes and the aggregate status
// settle asynchronously and are read back with Get or List.
//
// # Usage
//
//	store := notification.NewMemoryStorage()
//	manager := notification.NewManager(store, resolver, renderer, dispatcher,
//		notification.WithDispatchWorkers(8),
//	)
//	defer manager.Close(context.Background())
//
//	result, err := manager.Create(ctx, notification.CreateRequest{
//		UserID:     "user-1",
//		Type:       "system",
//		TemplateID: "welcome",
//		Data:       map[string]any{"name": "Ana", "email": "ana@example.com"},
//		Options:    &notification.CreateOptions{IdempotencyKey: "welcome-user-1"},
//	})
//
// # Idempotency
//
// When a request carries an idempotency key, a prior notification with the
// same key is returned as-is and nothing new is created or dispatched. Racing
// creators are arbitrated by the storage layer's unique key constraint; the
// loser re-reads and returns the winner's record.
//
// # Status aggregation
//
// Each channel settles to sent or failed independently. AggregateStatus folds
// the settled states: sent on every channel is sent, failed on every channel
// is failed, any mix is partial. A notification whose preferences allow no
// channels is created terminal as partial with an empty channel map.
//
// Storage implementations: MemoryStorage for tests and development,
// MongoStorage for production.
package notification
