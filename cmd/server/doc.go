// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package main is the entry point for the ToyVerse recommendation server.

ToyVerse serves product recommendations for a toy storefront. Shoppers are
identified by a bearer JWT when present, otherwise by the X-Session-ID header
or their client IP. Every tracked interaction is stored in DuckDB and
published on the interaction event bus.

# Application Architecture

The server runs under a suture v4 supervisor tree:

	RootSupervisor ("toyverse")
	├── DataSupervisor ("data-layer")
	│   └── Maintenance (DuckDB checkpoints, engine counters)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event consumer (when events.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB with schema migrations and the launch catalog
 4. Authentication: JWT validation, or none
 5. Recommendation engine
 6. Event bus: watermill gochannel, or core NATS with -tags nats
 7. HTTP router (chi) and server
 8. Supervisor tree

# Build Tags

	go build ./cmd/server               # in-process event bus
	go build -tags nats ./cmd/server    # NATS event bus when NATS_URL is set

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for server.shutdown_timeout, then the event bus and the
database are closed.

# Example Usage

Development without authentication:

	export AUTH_MODE=none
	export DUCKDB_PATH=/tmp/toyverse.duckdb
	./toyverse

Production:

	export JWT_SECRET=$(openssl rand -base64 32)
	export CORS_ORIGINS=https://shop.example.com
	export ENVIRONMENT=production
	./toyverse

# API Documentation

The swag annotations below describe the /api/v1 surface.

@title ToyVerse API
@version 1.0
@description Toy catalog, reviews, wishlist, cart and product recommendations.

@BasePath /api/v1
@schemes http https

@securityDefinitions.apikey BearerAuth
@in header
@name Authorization
@description Bearer JWT. Anonymous callers are tracked by X-Session-ID.

@tag.name Core
@tag.description Health and readiness
@tag.name Recommendations
@tag.description Personalized and product recommendations, interaction tracking
*/
package main
