// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

// Package recommend builds product recommendations from the interaction log
// and the catalog.
//
// # Strategies
//
// A personalized request resolves the shopper's recent history (user id,
// else session id) into a touched set and combines up to three strategies:
//
//   - Category affinity: unseen products from the shopper's top categories
//   - Collaborative: products that co-occur with the touched products in
//     other registered users' histories, scored by rank
//   - Popularity: the most interacted-with products, padded with the
//     highest rated catalog entries
//
// The mode selects which strategies run. Results are merged in strategy
// order, deduplicated, stripped of touched products and truncated.
//
// Shoppers without history receive the popularity fallback only.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), db, db, logger)
//	items, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: &userID,
//	    Mode:   recommend.ModeAll,
//	    Limit:  20,
//	})
//
// # Thread Safety
//
// Engine holds no mutable recommendation state and is safe for concurrent
// use. Each call reads the store and catalog directly.
package recommend
