// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

// Engine produces recommendations and records interactions.
// It is safe for concurrent use once SetPublisher has been called.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	store     InteractionStore
	catalog   Catalog
	publisher InteractionPublisher

	requestCount  atomic.Int64
	fallbackCount atomic.Int64
	trackCount    atomic.Int64
	errorCount    atomic.Int64
}

// NewEngine creates a recommendation engine over store and catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store InteractionStore, catalog Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("interaction store is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		store:   store,
		catalog: catalog,
	}, nil
}

// SetPublisher installs the publisher notified after each tracked
// interaction. Call it before the engine serves requests.
func (e *Engine) SetPublisher(p InteractionPublisher) {
	e.publisher = p
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		FallbackCount: e.fallbackCount.Load(),
		TrackCount:    e.trackCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

// Recommend returns up to req.Limit products for the shopper identified by
// req. Products the shopper already interacted with are never returned.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) ([]RecommendationItem, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.Mode == "" {
		req.Mode = ModeAll
	}
	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	if req.Limit <= 0 {
		return []RecommendationItem{}, nil
	}

	logger := e.requestLogger(ctx, req)

	items, err := e.recommend(ctx, req, logger)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	e.observe(string(req.Mode), start, items)
	logger.Debug().
		Int("returned", len(items)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")
	return items, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, logger zerolog.Logger) ([]RecommendationItem, error) {
	history, err := e.history(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(history) == 0 {
		e.fallbackCount.Add(1)
		logger.Debug().Msg("no history, serving popularity fallback")
		return e.popularityFallback(ctx, req.Limit)
	}

	touchedIDs := touchedProductIDs(history)
	exclude := make(map[int64]struct{}, len(touchedIDs))
	for _, id := range touchedIDs {
		exclude[id] = struct{}{}
	}

	touched, err := e.materialize(ctx, touchedIDs)
	if err != nil {
		return nil, fmt.Errorf("load touched products: %w", err)
	}

	half := req.Limit / 2
	var groups [][]RecommendationItem

	if req.Mode.includesCategory() {
		items, err := e.categoryStrategy(ctx, touched, exclude, half)
		if err != nil {
			return nil, fmt.Errorf("category strategy: %w", err)
		}
		groups = append(groups, items)
	}

	if req.Mode.includesViewed() {
		items, err := e.collaborativeStrategy(ctx, touchedIDs, half)
		if err != nil {
			return nil, fmt.Errorf("collaborative strategy: %w", err)
		}
		groups = append(groups, items)
	}

	if req.Mode.includesPopular() {
		items, err := e.popularityFallback(ctx, e.config.PopularCap)
		if err != nil {
			return nil, fmt.Errorf("popularity strategy: %w", err)
		}
		groups = append(groups, items)
	}

	logger.Debug().
		Int("history", len(history)).
		Int("touched", len(touchedIDs)).
		Msg("strategies evaluated")

	return mergeItems(req.Limit, exclude, groups...), nil
}

// history returns the shopper's recent interactions, or nil for an anonymous
// request without a session.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) history(ctx context.Context, req Request) ([]models.Interaction, error) {
	switch {
	case req.UserID != nil:
		return e.store.InteractionsByUser(ctx, *req.UserID, "", e.config.HistoryLimit)
	case req.SessionID != "":
		return e.store.InteractionsBySession(ctx, req.SessionID, e.config.HistoryLimit)
	default:
		return nil, nil
	}
}

// touchedProductIDs returns the distinct product ids of history in
// first-seen order.
func touchedProductIDs(history []models.Interaction) []int64 {
	seen := make(map[int64]struct{}, len(history))
	ids := make([]int64, 0, len(history))
	for _, in := range history {
		if _, ok := seen[in.ProductID]; ok {
			continue
		}
		seen[in.ProductID] = struct{}{}
		ids = append(ids, in.ProductID)
	}
	return ids
}

// materialize loads products by id, skipping ids that no longer exist.
func (e *Engine) materialize(ctx context.Context, ids []int64) ([]models.Product, error) {
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := e.catalog.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

// mergeItems concatenates groups in order, keeping the first occurrence of
// each product and dropping excluded ones, up to limit items.
func mergeItems(limit int, exclude map[int64]struct{}, groups ...[]RecommendationItem) []RecommendationItem {
	out := make([]RecommendationItem, 0, limit)
	seen := make(map[int64]struct{})
	for _, group := range groups {
		for _, item := range group {
			if len(out) >= limit {
				return out
			}
			if _, ok := exclude[item.ID]; ok {
				continue
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) requestLogger(ctx context.Context, req Request) zerolog.Logger {
	lc := e.logger.With().Str("mode", string(req.Mode)).Int("limit", req.Limit)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if req.UserID != nil {
		lc = lc.Int64("user_id", *req.UserID)
	} else if req.SessionID != "" {
		lc = lc.Bool("session", true)
	}
	return lc.Logger()
}

func (e *Engine) observe(mode string, start time.Time, items []RecommendationItem) {
	reasons := make([]string, len(items))
	for i := range items {
		reasons[i] = string(items[i].Source)
	}
	metrics.RecordRecommendation(mode, time.Since(start), reasons)
}
