// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/database"
	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/models"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

// EventsBusDisabled is reported by the health endpoint when no bus runs.
const EventsBusDisabled = "disabled"

// CatalogInvalidator drops cached catalog lookups after a write.
type CatalogInvalidator interface {
	Invalidate()
}

// Handler holds the dependencies shared by all endpoints.
//
// Handler methods are split across files:
//   - handlers_health.go: health checks
//   - handlers_recommend.go: recommendations and interaction tracking
//   - handlers_catalog.go: product listing and creation
//   - handlers_reviews.go: product reviews
//   - handlers_wishlist.go: saved products
//   - handlers_cart.go: shopping cart
type Handler struct {
	db        *database.DB
	engine    *recommend.Engine
	config    *config.Config
	version   string
	eventsBus string
	startTime time.Time

	catalogCache CatalogInvalidator
}

// NewHandler creates a handler. version is reported by the health endpoint.
//
//	handler := api.NewHandler(db, engine, cfg, version)
//	router := api.NewRouter(handler, authMiddleware, &cfg.Security)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(db *database.DB, engine *recommend.Engine, cfg *config.Config, version string) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		config:    cfg,
		version:   version,
		eventsBus: EventsBusDisabled,
		startTime: time.Now(),
	}
}

// SetEventsBus records the event transport name for health reporting.
func (h *Handler) SetEventsBus(name string) {
	h.eventsBus = name
}

// SetCatalogInvalidator registers the catalog cache to clear after product
// and review writes.
func (h *Handler) SetCatalogInvalidator(c CatalogInvalidator) {
	h.catalogCache = c
}

func (h *Handler) invalidateCatalog() {
	if h.catalogCache != nil {
		h.catalogCache.Invalidate()
	}
}

// currentUser returns the token subject or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request, message string) (int64, bool) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == nil {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, message, nil)
		return 0, false
	}
	return *userID, true
}

// recordInteraction feeds a cart or wishlist action into the interaction log.
// Failures are logged and do not fail the request.
func (h *Handler) recordInteraction(r *http.Request, userID, productID int64, it models.InteractionType) {
	session := sessionID(r)
	_, err := h.engine.Track(r.Context(), recommend.TrackRequest{
		UserID:          &userID,
		SessionID:       &session,
		ProductID:       productID,
		InteractionType: it,
		UserAgent:       optionalString(r.UserAgent()),
		IPAddress:       optionalString(clientIP(r)),
	})
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).
			Int64("product_id", productID).
			Str("interaction_type", string(it)).
			Msg("Failed to record interaction")
	}
}

func (h *Handler) defaultLimit() int {
	if h.config != nil && h.config.Recommend.DefaultLimit > 0 {
		return h.config.Recommend.DefaultLimit
	}
	return h.engine.Config().DefaultLimit
}

func (h *Handler) productDefaultLimit() int {
	if h.config != nil && h.config.Recommend.ProductDefaultLimit > 0 {
		return h.config.Recommend.ProductDefaultLimit
	}
	return h.engine.Config().ProductDefaultLimit
}

func (h *Handler) maxLimit() int {
	if h.config != nil && h.config.Recommend.MaxLimit > 0 {
		return h.config.Recommend.MaxLimit
	}
	return 100
}
