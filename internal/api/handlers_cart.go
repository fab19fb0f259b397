// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// GetCart handles GET /api/v1/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to view your cart")
	if !ok {
		return
	}

	items, err := h.db.GetCart(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	cart := models.NewCart(items)
	respondSuccess(w, r, http.StatusOK, cart, intPtr(cart.ItemCount), start)
}

// AddToCart handles POST /api/v1/cart/add and records an add_to_cart
// interaction.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to add to your cart")
	if !ok {
		return
	}

	var req cartAddRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.db.AddToCart(r.Context(), userID, req.ProductID, quantity)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.recordInteraction(r, userID, req.ProductID, models.InteractionAddToCart)

	respondSuccess(w, r, http.StatusCreated, item, nil, start)
}

// UpdateCartItem handles PUT /api/v1/cart/{item_id}.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, ok := currentUser(w, r, "Sign in to edit your cart")
	if !ok {
		return
	}
	itemID, ok := int64PathParam(chi.URLParam(r, "item_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "cart item id must be a positive integer", nil)
		return
	}

	var req cartUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	item, err := h.db.UpdateCartItem(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, item, nil, start)
}

// RemoveCartItem handles DELETE /api/v1/cart/{item_id}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, "Sign in to edit your cart")
	if !ok {
		return
	}
	itemID, ok := int64PathParam(chi.URLParam(r, "item_id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "cart item id must be a positive integer", nil)
		return
	}

	productID, err := h.db.RemoveCartItem(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.recordInteraction(r, userID, productID, models.InteractionRemoveFromCart)
	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart/clear.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, "Sign in to edit your cart")
	if !ok {
		return
	}

	if _, err := h.db.ClearCart(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
