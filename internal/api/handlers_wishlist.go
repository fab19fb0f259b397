// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// GetWishlist handles GET /api/v1/wishlist.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to view your wishlist")
	if !ok {
		return
	}

	items, err := h.db.GetWishlist(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, items, intPtr(len(items)), start)
}

// WishlistProductIDs handles GET /api/v1/wishlist/product-ids.
func (h *Handler) WishlistProductIDs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to view your wishlist")
	if !ok {
		return
	}

	ids, err := h.db.WishlistProductIDs(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, wishlistIDsResponse{ProductIDs: ids}, intPtr(len(ids)), start)
}

// CheckWishlist handles GET /api/v1/wishlist/check/{product_id}.
func (h *Handler) CheckWishlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to view your wishlist")
	if !ok {
		return
	}
	productID, ok := int64PathParam(chi.URLParam(r, "product_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "product id must be a positive integer", nil)
		return
	}

	wishlisted, err := h.db.IsWishlisted(r.Context(), userID, productID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, wishlistCheckResponse{ProductID: productID, IsWishlisted: wishlisted}, nil, start)
}

// AddToWishlist handles POST /api/v1/wishlist/add and records a wishlist
// interaction.
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to save products")
	if !ok {
		return
	}

	var req wishlistAddRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	item, err := h.db.AddToWishlist(r.Context(), userID, req.ProductID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.recordInteraction(r, userID, req.ProductID, models.InteractionWishlist)

	respondSuccess(w, r, http.StatusCreated, item, nil, start)
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/remove/{product_id}.
func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, "Sign in to edit your wishlist")
	if !ok {
		return
	}
	productID, ok := int64PathParam(chi.URLParam(r, "product_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "product id must be a positive integer", nil)
		return
	}

	if err := h.db.RemoveFromWishlist(r.Context(), userID, productID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearWishlist handles DELETE /api/v1/wishlist/clear.
func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to edit your wishlist")
	if !ok {
		return
	}

	n, err := h.db.ClearWishlist(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Cleared %d items from wishlist", n),
	}, intPtr(n), start)
}
