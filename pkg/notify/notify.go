package notify

import "context"

// Message is an out-of-band notification payload, e.g. an OTP code email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier defines the interface for dispatching a message to the delivery
// channel. Dispatch is best-effort: callers log failures but never let them
// gate the operation that triggered the message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// Send does nothing.
func (n *NoOpNotifier) Send(ctx context.Context, msg Message) error {
	return nil
}
