package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const metaKeyTopic = "topic"

// Bus is an in-process Publisher and Subscriber backed by watermill's GoChannel.
type Bus struct {
	channel *gochannel.GoChannel
}

// NewBus creates an in-memory bus. Messages published before any subscriber
// exists are dropped.
func NewBus() *Bus {
	logger := watermill.NewStdLogger(false, false)
	return &Bus{
		channel: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
	}
}

func toWatermill(msg Message) *message.Message {
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wm.Metadata.Set(k, v)
	}
	wm.Metadata.Set(metaKeyTopic, msg.Topic)
	return wm
}

func fromWatermill(wm *message.Message) Message {
	metadata := make(map[string]string, len(wm.Metadata))
	for k, v := range wm.Metadata {
		if k != metaKeyTopic {
			metadata[k] = v
		}
	}
	return Message{
		Topic:    wm.Metadata.Get(metaKeyTopic),
		Payload:  wm.Payload,
		Metadata: metadata,
	}
}

// Publish implements Publisher.
func (b *Bus) Publish(ctx context.Context, msg Message) error {
	wm := toWatermill(msg)
	wm.SetContext(ctx)
	return b.channel.Publish(msg.Topic, wm)
}

// Subscribe implements Subscriber. It returns once the subscription is live.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wm := range messages {
			if err := handler(ctx, fromWatermill(wm)); err != nil {
				// Nacked messages are redelivered by the GoChannel; handlers
				// on this bus get a single attempt.
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wm.UUID, "error", err)
			}
			wm.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()
	return nil
}

// Close implements Publisher and Subscriber.
func (b *Bus) Close() error {
	return b.channel.Close()
}
