// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// healthPingTimeout bounds the DuckDB ping in health checks.
const healthPingTimeout = 2 * time.Second

func (h *Handler) pingDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.db.Ping(ctx)
}

// Health handles GET /api/v1/health. It always answers 200; status is
// "degraded" when DuckDB does not respond.
//
// @Summary Get service health
// @Description Reports database connectivity, version, uptime and the event bus in use
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status, database := "healthy", "connected"
	if h.db == nil || h.pingDB(r.Context()) != nil {
		status, database = "degraded", "disconnected"
	}

	respondSuccess(w, r, http.StatusOK, models.HealthStatus{
		Status:    status,
		Database:  database,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		EventsBus: h.eventsBus,
	}, nil, start)
}

// HealthLive handles GET /api/v1/health/live. 200 while the process runs.
//
// @Summary Liveness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"}, nil, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. 503 until DuckDB answers.
//
// @Summary Readiness check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Ready to serve"
// @Failure 503 {object} models.APIResponse "Database is not reachable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.pingDB(r.Context()) != nil {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Database is not reachable", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "ready"}, nil, time.Now())
}
