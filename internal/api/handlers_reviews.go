// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

// ListReviews handles GET /api/v1/reviews/{product_id}?skip=&limit=.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	productID, ok := int64PathParam(chi.URLParam(r, "product_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "product id must be a positive integer", nil)
		return
	}
	skip, err := intQueryParam(r, "skip", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	limit, err := intQueryParam(r, "limit", 100)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}

	q := reviewListQuery{ProductID: productID, Skip: skip, Limit: limit}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	reviews, err := h.db.ListReviews(r.Context(), q.ProductID, q.Skip, q.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, reviews, intPtr(len(reviews)), start)
}

// CreateReview handles POST /api/v1/reviews. The reviewer is the token
// subject.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := currentUser(w, r, "Sign in to post a review")
	if !ok {
		return
	}

	var req createReviewRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Text:      req.Text,
	}
	if err := h.db.CreateReview(r.Context(), review); err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.invalidateCatalog()

	respondSuccess(w, r, http.StatusCreated, review, nil, start)
}

// UpdateReview handles PUT /api/v1/reviews/{review_id}. Only the author may
// edit a review.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to edit a review")
	if !ok {
		return
	}
	review, ok := h.loadReview(w, r)
	if !ok {
		return
	}
	if review.UserID != userID {
		respondError(w, r, http.StatusForbidden, CodeForbidden, "Not authorized to update this review", nil)
		return
	}

	var req updateReviewRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	updated, err := h.db.UpdateReview(r.Context(), review.ID, models.ReviewUpdate{Rating: req.Rating, Text: req.Text})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.invalidateCatalog()

	respondSuccess(w, r, http.StatusOK, updated, nil, start)
}

// DeleteReview handles DELETE /api/v1/reviews/{review_id}. The author or an
// admin may delete a review.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, "Sign in to delete a review")
	if !ok {
		return
	}
	review, ok := h.loadReview(w, r)
	if !ok {
		return
	}
	if review.UserID != userID && !isAdmin(r) {
		respondError(w, r, http.StatusForbidden, CodeForbidden, "Not authorized to delete this review", nil)
		return
	}

	if err := h.db.DeleteReview(r.Context(), review.ID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.invalidateCatalog()

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadReview(w http.ResponseWriter, r *http.Request) (*models.Review, bool) {
	reviewID, ok := int64PathParam(chi.URLParam(r, "review_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "review id must be a positive integer", nil)
		return nil, false
	}
	review, err := h.db.GetReviewByID(r.Context(), reviewID)
	if err != nil {
		respondServiceError(w, r, err)
		return nil, false
	}
	return review, true
}

func isAdmin(r *http.Request) bool {
	claims := auth.ClaimsFromContext(r.Context())
	return claims != nil && claims.Role == auth.RoleAdmin
}
