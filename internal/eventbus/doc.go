// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package eventbus publishes tracked interactions to a watermill topic and
consumes them back for accounting.

Every interaction accepted by the recommendation engine is wrapped in an
InteractionEvent and published on the configured topic (default
"interaction.tracked"). Publishing goes through a sony/gobreaker circuit
breaker so a broken transport stops costing request latency after a few
consecutive failures.

# Transports

The default transport is watermill's in-process gochannel pub/sub. Builds
tagged with "nats" switch to core NATS (watermill-nats, JetStream disabled)
whenever events.nats_url is set:

	go build -tags nats ./cmd/server

# Consumer

Consumer subscribes to the same topic and counts events per interaction
type in toyverse_interactions_consumed_total. It implements suture.Service
and is meant to run under the messaging layer of the supervisor tree.
*/
package eventbus
