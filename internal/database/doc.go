// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

// Package database is the DuckDB-backed persistence layer for ToyVerse.
//
// # Overview
//
// The package owns three tables and exposes the data access the
// recommendation engine and HTTP handlers need:
//
//   - products: the toy catalog (catalog.go, seed.go)
//   - reviews: one 1-5 star review per user and product (reviews.go)
//   - product_interactions: the append-only interaction log (interactions.go)
//
// # Architecture
//
//   - database.go: connection lifecycle, pool tuning, Ping and Close
//   - schema.go: table, sequence and index creation
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - errors.go: sentinel errors and resource cleanup helpers
//
// # Query Conventions
//
// Every query runs under a bounded context (see queryContext) and reports its
// latency to metrics.RecordDBQuery with an operation and table label. Errors
// are wrapped with the operation name so callers can log them as-is:
//
//	products, err := db.GetProductsByCategory(ctx, "Sets")
//	if err != nil {
//	    return fmt.Errorf("category strategy: %w", err)
//	}
//
// # Testing
//
// Tests open an in-memory database (Path ":memory:") and serialize access
// through a package-level semaphore because concurrent DuckDB CGO calls from
// many tests can stall under CI load.
package database
