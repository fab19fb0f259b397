// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package cache provides a TTL-bounded LRU cache and a read-through cache for
the product catalog.

# LRU

LRU is a thread-safe least-recently-used cache with per-entry expiry. Get,
Add and eviction are O(1) using a hashmap over a doubly-linked list. Expired
entries are dropped lazily on access.

# Catalog

Catalog wraps a recommend.Catalog and caches product lookups by id, by
category and for the whole catalog. Absent products are not cached so new
products become visible on the next lookup. Writers call Invalidate after
creating products or reviews:

	catalog := cache.NewCatalog(db, 1024, 30*time.Second)
	engine, _ := recommend.NewEngine(cfg, db, catalog, logger)
	handler.SetCatalogInvalidator(catalog)

Lookups that started before an Invalidate never repopulate the cache.
*/
package cache
