// Package notify delivers outbound messages in the background.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

const deliveryTimeout = 30 * time.Second

// Deliverer sends one message over some transport.
type Deliverer interface {
	Deliver(ctx context.Context, msg model.Message) error
}

var _ model.Notifier = (*Dispatcher)(nil)

// Dispatcher hands each message to its Deliverer on a separate goroutine.
// Callers never wait for delivery and never see its errors.
type Dispatcher struct {
	deliverer Deliverer
	from      string
	logger    *logger.Logger
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. from is used for messages without a sender.
func NewDispatcher(deliverer Deliverer, from string, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		deliverer: deliverer,
		from:      from,
		logger:    logger,
		timeout:   deliveryTimeout,
	}
}

// Notify schedules delivery of msg. The request context's cancellation does
// not abort delivery.
func (d *Dispatcher) Notify(ctx context.Context, msg model.Message) {
	if msg.From == "" {
		msg.From = d.from
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("Notify: dispatcher closed, message dropped",
			"to", msg.To,
			"subject", msg.Subject)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.deliverer.Deliver(ctx, msg); err != nil {
			d.logger.Error("Notify: delivery failed",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err.Error())
			return
		}
		d.logger.Debug("Notify: message delivered",
			"to", msg.To,
			"subject", msg.Subject)
	}()
}

// Close stops accepting messages and waits for pending deliveries or ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
