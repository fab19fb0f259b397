// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package eventbus

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Armaghan195/ToyVerse/internal/logging"
)

// Transport names reported by the health endpoint.
const (
	TransportChannel = "gochannel"
	TransportNATS    = "nats"
)

// Transport pairs the publisher and subscriber sides of one pub/sub backend.
type Transport struct {
	Name       string
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes both sides. A shared gochannel is closed once.
func (t *Transport) Close() error {
	var errs []error
	if err := t.Publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if t.Subscriber != nil && any(t.Subscriber) != any(t.Publisher) {
		if err := t.Subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewChannelTransport returns an in-process transport. Messages published
// while nobody is subscribed are dropped.
func NewChannelTransport(bufferSize int, logger watermill.LoggerAdapter) *Transport {
	if logger == nil {
		logger = watermill.NewSlogLogger(logging.NewSlogLogger())
	}
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(bufferSize),
	}, logger)
	return &Transport{
		Name:       TransportChannel,
		Publisher:  ch,
		Subscriber: ch,
	}
}
