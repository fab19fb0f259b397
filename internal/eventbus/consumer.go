// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/metrics"
)

// EventHandler is called for every decoded event. A returned error nacks
// the message.
type EventHandler func(ctx context.Context, event *InteractionEvent) error

// Consumer reads interaction events off the bus. It implements suture.Service.
type Consumer struct {
	subscriber message.Subscriber
	topic      string
	handler    EventHandler

	readyOnce sync.Once
	ready     chan struct{}
}

// NewConsumer creates a consumer for topic. handler may be nil.
func NewConsumer(sub message.Subscriber, topic string, handler EventHandler) *Consumer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Consumer{
		subscriber: sub,
		topic:      topic,
		handler:    handler,
		ready:      make(chan struct{}),
	}
}

// Ready is closed once the first subscription is established.
func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

// Serve subscribes and processes messages until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}
	c.readyOnce.Do(func() { close(c.ready) })

	logger := logging.WithComponent("event-consumer")
	logger.Info().Str("topic", c.topic).Msg("Event consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", c.topic)
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	logger := logging.WithComponent("event-consumer")

	event, err := UnmarshalEvent(msg.Payload)
	if err != nil {
		// Undecodable payloads would be redelivered forever; drop them.
		logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed interaction event")
		msg.Ack()
		return
	}

	if c.handler != nil {
		if err := c.handler(ctx, event); err != nil {
			logger.Warn().Err(err).Str("event_id", event.EventID).Msg("Interaction event handler failed")
			msg.Nack()
			return
		}
	}

	metrics.RecordInteractionConsumed(event.InteractionType)
	msg.Ack()
}

// String names the service in supervisor logs.
func (c *Consumer) String() string {
	return "event-consumer"
}
