// Package channel routes rendered notification content to delivery channels.
//
// Each channel is an Adapter registered by name with the Dispatcher. The
// dispatcher is the error boundary for delivery: unknown channels, adapter
// errors and panics are all converted into failed DeliveryResults so the
// caller can keep dispatching the remaining channels and fold the outcomes
// into an aggregate status.
//
// Two adapters ship with the package:
//
//   - InAppAdapter persists rendered content onto the notification record and
//     optionally publishes to a live Feed that transports (SSE, WebSocket)
//     can subscribe to per user.
//   - EmailAdapter sends through an EmailSender: Postmark in production,
//     DevSender (files on disk) for local development.
//
// Rendered content travels as a tagged Content union so adapters get typed
// access to their fields while unknown channels still receive the raw field
// bag.
package channel
