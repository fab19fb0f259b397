// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package main

import (
	"context"

	"github.com/Armaghan195/ToyVerse/internal/api"
	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/eventbus"
	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

// eventComponents holds the running event bus. The zero value is a
// disabled bus.
type eventComponents struct {
	transport *eventbus.Transport
	publisher *eventbus.Publisher
	consumer  *eventbus.Consumer
}

// initEvents builds the event bus and installs its publisher on engine.
// A disabled bus returns empty components.
func initEvents(cfg *config.EventsConfig, engine *recommend.Engine) (*eventComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Interaction event bus disabled (EVENTS_ENABLED=false)")
		return &eventComponents{}, nil
	}

	transport, err := eventbus.NewTransport(cfg)
	if err != nil {
		return nil, err
	}

	publisher := eventbus.NewPublisher(transport.Publisher, cfg)
	engine.SetPublisher(publisher)

	consumer := eventbus.NewConsumer(transport.Subscriber, publisher.Topic(), logConsumedEvent)

	logging.Info().
		Str("transport", transport.Name).
		Str("topic", publisher.Topic()).
		Msg("Interaction event bus initialized")

	return &eventComponents{
		transport: transport,
		publisher: publisher,
		consumer:  consumer,
	}, nil
}

func logConsumedEvent(ctx context.Context, event *eventbus.InteractionEvent) error {
	logging.Ctx(ctx).Debug().
		Str("event_id", event.EventID).
		Int64("interaction_id", event.InteractionID).
		Int64("product_id", event.ProductID).
		Str("interaction_type", event.InteractionType).
		Msg("Interaction event consumed")
	return nil
}

// Name reports the transport for the health endpoint.
func (c *eventComponents) Name() string {
	if c.transport == nil {
		return api.EventsBusDisabled
	}
	return c.transport.Name
}

// Consumer returns the consumer service, or nil when the bus is disabled.
func (c *eventComponents) Consumer() *eventbus.Consumer {
	return c.consumer
}

// Close stops publishing, then closes the transport.
func (c *eventComponents) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			logging.Err(err).Msg("Error closing event publisher")
		}
	}
	if c.transport != nil {
		if err := c.transport.Close(); err != nil {
			logging.Err(err).Msg("Error closing event transport")
		}
	}
}
