// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

// ErrPublisherClosed is returned by PublishInteraction after Close.
var ErrPublisherClosed = errors.New("event publisher is closed")

// Metadata keys set on every published message.
const (
	MetadataInteractionType = "interaction_type"
	MetadataRequestID       = "request_id"
	MetadataSchemaVersion   = "schema_version"
)

// Publisher sends interaction events through a circuit breaker.
type Publisher struct {
	publisher      message.Publisher
	topic          string
	circuitBreaker *gobreaker.CircuitBreaker[interface{}]

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. The breaker is built from cfg.
func NewPublisher(pub message.Publisher, cfg *config.EventsConfig) *Publisher {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		publisher:      pub,
		topic:          topic,
		circuitBreaker: NewCircuitBreaker(cfg),
	}
}

// Topic returns the topic events are published on.
func (p *Publisher) Topic() string {
	return p.topic
}

// BreakerState returns the current breaker state name.
func (p *Publisher) BreakerState() string {
	return p.circuitBreaker.State().String()
}

// PublishInteraction encodes in as an InteractionEvent and publishes it.
func (p *Publisher) PublishInteraction(ctx context.Context, in *models.Interaction) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	event := NewInteractionEvent(in)
	data, err := MarshalEvent(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(MetadataInteractionType, event.InteractionType)
	msg.Metadata.Set(MetadataSchemaVersion, fmt.Sprint(event.SchemaVersion))
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		msg.Metadata.Set(MetadataRequestID, requestID)
	}
	msg.SetContext(ctx)

	_, err = p.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(p.topic, msg)
	})
	metrics.RecordEventPublish(err)
	if err != nil {
		return fmt.Errorf("publish interaction %d: %w", in.ID, err)
	}
	return nil
}

// Close stops accepting events and closes the underlying publisher.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
