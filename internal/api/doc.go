// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package api exposes the ToyVerse HTTP API on a chi router.

Endpoints (all JSON, wrapped in models.APIResponse):

	GET  /api/v1/health                         liveness + DuckDB ping
	GET  /api/v1/health/live                    process liveness
	GET  /api/v1/health/ready                   readiness (DuckDB reachable)
	GET  /api/v1/recommendations                personalized list (?type=&limit=)
	POST /api/v1/recommendations/track          record an interaction
	GET  /api/v1/recommendations/product/{id}   related products (?limit=)
	GET  /api/v1/products                       catalog listing with filters
	GET  /api/v1/products/{id}                  one product
	POST /api/v1/products                       create product (admin)
	GET  /api/v1/reviews/{product_id}           reviews, newest first
	POST /api/v1/reviews                        create review (signed-in user)
	GET  /metrics                               Prometheus exposition

Identity: the user comes from the bearer token subject when one is present
and valid. The session is the X-Session-ID header, falling back to the
client IP resolved by chi's RealIP middleware. Clients behind a shared NAT
therefore share a session unless they send X-Session-ID.

Errors use stable codes: BAD_REQUEST, VALIDATION_ERROR, NOT_FOUND, CONFLICT,
UNAUTHORIZED, FORBIDDEN, DATABASE_ERROR and INTERNAL_ERROR.
*/
package api
