// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/models"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Query: type (all|category|viewed|popular, default all), limit (default
// from config). Signed-in users get history by user id, everyone else by
// session.
//
// @Summary Get personalized recommendations
// @Description Recommends products from the caller's interaction history, falling back to popular and highly rated products
// @Tags Recommendations
// @Produce json
// @Param type query string false "Strategy" Enums(all, category, viewed, popular) default(all)
// @Param limit query int false "Maximum items"
// @Param X-Session-ID header string false "Anonymous session id"
// @Success 200 {object} models.APIResponse{data=[]recommend.RecommendationItem} "Recommendations"
// @Failure 400 {object} models.APIResponse "Invalid type or limit"
// @Failure 500 {object} models.APIResponse "Database error"
// @Security BearerAuth
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, err := intQueryParam(r, "limit", h.defaultLimit())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}

	q := recommendationsQuery{
		Type:  strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))),
		Limit: limit,
	}
	if q.Type == "" {
		q.Type = string(recommend.ModeAll)
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if !h.checkLimit(w, r, q.Limit) {
		return
	}

	items, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID:    auth.UserIDFromContext(r.Context()),
		SessionID: sessionID(r),
		Mode:      recommend.Mode(q.Type),
		Limit:     q.Limit,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, items, intPtr(len(items)), start)
}

// TrackInteraction handles POST /api/v1/recommendations/track.
//
// product_id and interaction_type (default view) come from the query
// string, or from a JSON body when the query has no product_id.
//
// @Summary Track a product interaction
// @Description Records a view, click, add_to_cart, purchase or wishlist interaction and publishes it on the event bus
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param product_id query int false "Product id"
// @Param interaction_type query string false "Interaction type" default(view)
// @Param X-Session-ID header string false "Anonymous session id"
// @Success 200 {object} models.APIResponse{data=trackResponse} "Interaction tracked"
// @Failure 400 {object} models.APIResponse "Invalid product id or interaction type"
// @Failure 500 {object} models.APIResponse "Database error"
// @Security BearerAuth
// @Router /recommendations/track [post]
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseTrackRequest(w, r)
	if apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	session := sessionID(r)
	ip := clientIP(r)
	interaction, err := h.engine.Track(r.Context(), recommend.TrackRequest{
		UserID:          auth.UserIDFromContext(r.Context()),
		SessionID:       &session,
		ProductID:       req.ProductID,
		InteractionType: models.InteractionType(req.InteractionType),
		UserAgent:       optionalString(r.UserAgent()),
		IPAddress:       optionalString(ip),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, trackResponse{
		Message:     "Interaction tracked successfully",
		Interaction: interaction,
	}, nil, start)
}

func parseTrackRequest(w http.ResponseWriter, r *http.Request) (*trackRequest, *models.APIError) {
	req := &trackRequest{}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("product_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &models.APIError{Code: CodeBadRequest, Message: "product_id must be an integer"}
		}
		req.ProductID = id
		req.InteractionType = query.Get("interaction_type")
	} else if r.ContentLength != 0 {
		if err := decodeJSONBody(w, r, req); err != nil {
			return nil, &models.APIError{Code: CodeBadRequest, Message: err.Error()}
		}
	}

	req.InteractionType = strings.ToLower(strings.TrimSpace(req.InteractionType))
	if req.InteractionType == "" {
		req.InteractionType = string(models.InteractionView)
	}
	return req, nil
}

// ProductRecommendations handles GET /api/v1/recommendations/product/{id}.
// An unknown product yields an empty list.
//
// @Summary Get recommendations for a product
// @Description Same-category products and products co-viewed with the given product
// @Tags Recommendations
// @Produce json
// @Param id path int true "Product id"
// @Param limit query int false "Maximum items"
// @Success 200 {object} models.APIResponse{data=[]recommend.RecommendationItem} "Recommendations"
// @Failure 400 {object} models.APIResponse "Invalid product id or limit"
// @Router /recommendations/product/{id} [get]
func (h *Handler) ProductRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	productID, ok := int64PathParam(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "product id must be a positive integer", nil)
		return
	}
	limit, err := intQueryParam(r, "limit", h.productDefaultLimit())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}

	q := productRecommendationsQuery{ProductID: productID, Limit: limit}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if !h.checkLimit(w, r, q.Limit) {
		return
	}

	items, err := h.engine.ProductRecommendations(r.Context(), q.ProductID, q.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, items, intPtr(len(items)), start)
}

// checkLimit enforces the configured upper bound on limit.
func (h *Handler) checkLimit(w http.ResponseWriter, r *http.Request, limit int) bool {
	if upper := h.maxLimit(); limit > upper {
		respondErrorDetails(w, r, http.StatusBadRequest, &models.APIError{
			Code:    CodeValidationError,
			Message: fmt.Sprintf("limit must be at most %d", upper),
			Details: map[string]interface{}{"field": "limit", "max": upper},
		}, nil)
		return false
	}
	return true
}
