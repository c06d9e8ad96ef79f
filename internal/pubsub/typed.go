package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Topic binds a topic name to a payload type and handles JSON encoding.
type Topic[T any] struct {
	name string
}

// NewTopic returns a typed topic.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string { return t.name }

// Publish encodes payload and publishes it with the given metadata.
func (t Topic[T]) Publish(ctx context.Context, pub Publisher, payload T, metadata map[string]string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", t.name, err)
	}
	return pub.Publish(ctx, Message{Topic: t.name, Payload: body, Metadata: metadata})
}

// Subscribe decodes each message on the topic before calling handler.
func (t Topic[T]) Subscribe(ctx context.Context, sub Subscriber, handler func(ctx context.Context, payload T, msg Message) error) error {
	return sub.Subscribe(ctx, t.name, func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", t.name, err)
		}
		return handler(ctx, payload, msg)
	})
}
