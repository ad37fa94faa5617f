package channel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notifykit/notifykit/pkg/logger"
)

// Dispatcher routes a delivery payload to the adapter registered under the
// channel name. It is the error boundary for adapters: unknown channels,
// returned errors and panics all become failed DeliveryResults, never raised
// errors, so the caller can keep dispatching remaining channels.
type Dispatcher struct {
	adapters map[string]Adapter
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher with the given adapters registered under
// their names.
func NewDispatcher(adapters []Adapter, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		adapters: make(map[string]Adapter, len(adapters)),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	for _, a := range adapters {
		d.adapters[a.Name()] = a
	}

	return d
}

// Register adds an adapter, replacing any previous registration for the name.
func (d *Dispatcher) Register(adapter Adapter) {
	d.adapters[adapter.Name()] = adapter
}

// Send delivers the payload through the named channel.
func (d *Dispatcher) Send(ctx context.Context, channelName string, payload Payload) DeliveryResult {
	adapter, ok := d.adapters[channelName]
	if !ok {
		return DeliveryResult{
			Success:   false,
			Channel:   channelName,
			Timestamp: time.Now(),
			Error: &DeliveryError{
				Code:      CodeChannelNotSupported,
				Message:   fmt.Sprintf("channel %s is not supported", channelName),
				Retryable: false,
			},
		}
	}

	result, err := d.safeSend(ctx, adapter, payload)
	if err != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "channel send failed",
			logger.Channel(channelName),
			logger.UserID(payload.UserID),
			logger.Error(err),
		)
		return DeliveryResult{
			Success:   false,
			Channel:   channelName,
			Timestamp: time.Now(),
			Error: &DeliveryError{
				Code:      CodeChannelSendError,
				Message:   err.Error(),
				Retryable: true,
			},
		}
	}

	if result.Channel == "" {
		result.Channel = channelName
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}

	return result
}

// safeSend invokes the adapter, converting panics into errors so a misbehaving
// adapter cannot take down the dispatch loop.
func (d *Dispatcher) safeSend(ctx context.Context, adapter Adapter, payload Payload) (result DeliveryResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()
	return adapter.Send(ctx, payload)
}

// VerifyAll checks every registered adapter's transport, returning a map of
// channel name to health.
func (d *Dispatcher) VerifyAll(ctx context.Context) map[string]bool {
	results := make(map[string]bool, len(d.adapters))
	for name, adapter := range d.adapters {
		err := adapter.Verify(ctx)
		if err != nil {
			d.logger.LogAttrs(ctx, slog.LevelWarn, "channel verification failed",
				logger.Channel(name),
				logger.Error(err),
			)
		}
		results[name] = err == nil
	}
	return results
}

// Channels returns the registered channel names.
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.adapters))
	for name := range d.adapters {
		names = append(names, name)
	}
	return names
}
