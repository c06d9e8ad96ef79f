package pubsub

import "context"

// Message is what travels on the bus.
type Message struct {
	// Topic identifies the channel, e.g. "login.attempts".
	Topic string
	// Payload is the encoded event body.
	Payload []byte
	// Metadata carries string key/value context such as the form id.
	Metadata map[string]string
}

// Handler processes a received message. Errors are logged; the message is
// not redelivered.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe starts delivering messages for topic to handler in the
	// background until ctx is cancelled or the subscriber is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
