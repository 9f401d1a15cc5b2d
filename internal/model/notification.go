package model

import "context"

// Message is an outbound notification.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Notifier delivers messages without blocking the caller. Delivery
// failures are logged by the implementation and never returned.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}
