// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

func testEventsConfig() *config.EventsConfig {
	return &config.EventsConfig{
		Enabled:                 true,
		Topic:                   DefaultTopic,
		BufferSize:              16,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          time.Minute,
		BreakerFailureThreshold: 3,
	}
}

// recordingPublisher captures published messages or fails every call.
type recordingPublisher struct {
	mu       sync.Mutex
	fail     error
	calls    int
	messages []*message.Message
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail != nil {
		return p.fail
	}
	p.messages = append(p.messages, msgs...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublisher_PublishInteraction(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewPublisher(rec, testEventsConfig())

	before := testutil.ToFloat64(metrics.EventsPublished)
	ctx := logging.ContextWithRequestID(context.Background(), "req-123")
	if err := pub.PublishInteraction(ctx, testInteraction()); err != nil {
		t.Fatalf("PublishInteraction() error = %v", err)
	}

	if len(rec.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(rec.messages))
	}
	msg := rec.messages[0]
	if got := msg.Metadata.Get(MetadataInteractionType); got != "add_to_cart" {
		t.Errorf("interaction_type metadata = %q", got)
	}
	if got := msg.Metadata.Get(MetadataRequestID); got != "req-123" {
		t.Errorf("request_id metadata = %q", got)
	}
	event, err := UnmarshalEvent(msg.Payload)
	if err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if event.EventID != msg.UUID {
		t.Errorf("message UUID %q != event id %q", msg.UUID, event.EventID)
	}
	if got := testutil.ToFloat64(metrics.EventsPublished) - before; got != 1 {
		t.Errorf("events published delta = %v, want 1", got)
	}
}

func TestPublisher_BreakerOpens(t *testing.T) {
	rec := &recordingPublisher{fail: errors.New("transport down")}
	pub := NewPublisher(rec, testEventsConfig())

	for i := 0; i < 3; i++ {
		if err := pub.PublishInteraction(context.Background(), testInteraction()); err == nil {
			t.Fatalf("attempt %d: expected error", i)
		}
	}
	if pub.BreakerState() != gobreaker.StateOpen.String() {
		t.Fatalf("breaker state = %s, want open", pub.BreakerState())
	}

	err := pub.PublishInteraction(context.Background(), testInteraction())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if rec.calls != 3 {
		t.Errorf("transport called %d times, want 3", rec.calls)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("breaker gauge = %v, want 2", got)
	}
}

func TestPublisher_Closed(t *testing.T) {
	pub := NewPublisher(&recordingPublisher{}, testEventsConfig())
	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if err := pub.PublishInteraction(context.Background(), testInteraction()); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("error = %v, want ErrPublisherClosed", err)
	}
}

func TestPublisher_RejectsInvalidInteraction(t *testing.T) {
	rec := &recordingPublisher{}
	pub := NewPublisher(rec, testEventsConfig())

	bad := testInteraction()
	bad.InteractionType = models.InteractionType("bogus")
	if err := pub.PublishInteraction(context.Background(), bad); err == nil {
		t.Error("expected validation error")
	}
	if rec.calls != 0 {
		t.Errorf("transport should not be called, got %d", rec.calls)
	}
}

func TestPublisher_DefaultTopic(t *testing.T) {
	cfg := testEventsConfig()
	cfg.Topic = ""
	if got := NewPublisher(&recordingPublisher{}, cfg).Topic(); got != DefaultTopic {
		t.Errorf("Topic() = %q, want %q", got, DefaultTopic)
	}
}
