// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

// Checkpointer flushes the database WAL.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// EngineStats exposes the recommendation engine counters.
type EngineStats interface {
	GetMetrics() recommend.Metrics
}

// MaintenanceConfig controls the maintenance loop.
type MaintenanceConfig struct {
	// CheckpointInterval is the tick period. Non-positive disables ticking;
	// the service then idles until canceled.
	CheckpointInterval time.Duration

	// CheckpointTimeout bounds a single checkpoint. Default: 1m.
	CheckpointTimeout time.Duration
}

// MaintenanceService checkpoints DuckDB on a schedule and logs the engine
// counters each tick.
type MaintenanceService struct {
	db     Checkpointer
	stats  EngineStats
	config MaintenanceConfig
	logger zerolog.Logger
}

// NewMaintenanceService creates the service. stats may be nil.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewMaintenanceService(db Checkpointer, stats EngineStats, cfg MaintenanceConfig, logger zerolog.Logger) *MaintenanceService {
	if cfg.CheckpointTimeout <= 0 {
		cfg.CheckpointTimeout = time.Minute
	}
	return &MaintenanceService{
		db:     db,
		stats:  stats,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	if s.config.CheckpointInterval <= 0 {
		s.logger.Info().Msg("periodic checkpoints disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().
		Dur("interval", s.config.CheckpointInterval).
		Msg("maintenance service running")

	ticker := time.NewTicker(s.config.CheckpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *MaintenanceService) tick(ctx context.Context) {
	checkpointCtx, cancel := context.WithTimeout(ctx, s.config.CheckpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(checkpointCtx); err != nil {
		// A failed checkpoint is retried next tick; the WAL stays intact.
		s.logger.Warn().Err(err).Msg("checkpoint failed")
	} else {
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("checkpoint complete")
	}

	if s.stats != nil {
		m := s.stats.GetMetrics()
		s.logger.Info().
			Int64("requests", m.RequestCount).
			Int64("fallbacks", m.FallbackCount).
			Int64("tracked", m.TrackCount).
			Int64("errors", m.ErrorCount).
			Msg("recommendation engine counters")
	}
}

// String names the service in supervisor logs.
func (s *MaintenanceService) String() string {
	return "maintenance"
}
