// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

//go:build !nats

package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/logging"
)

// NewTransport builds the transport selected by cfg. Without the nats build
// tag this is always the in-process channel.
func NewTransport(cfg *config.EventsConfig) (*Transport, error) {
	if cfg.NATSURL != "" {
		logging.Warn().
			Str("nats_url", cfg.NATSURL).
			Msg("events.nats_url is set but this binary was built without -tags nats; using in-process transport")
	}
	return NewChannelTransport(cfg.BufferSize, watermill.NewSlogLogger(logging.NewSlogLogger())), nil
}
