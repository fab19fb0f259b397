// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Armaghan195/ToyVerse/internal/logging"
)

// ListProducts handles GET /api/v1/products.
//
// Filters: category, price_max, rating (minimum), search, in_stock. Paging:
// skip (default 0), limit (default and max 100).
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, apiErr := parseProductListQuery(r)
	if apiErr != "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(q); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	products, err := h.db.ListProducts(r.Context(), q.filter())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, products, intPtr(len(products)), start)
}

// parseProductListQuery returns a non-empty message for malformed values.
func parseProductListQuery(r *http.Request) (*productListQuery, string) {
	query := r.URL.Query()
	q := &productListQuery{
		Category: strings.TrimSpace(query.Get("category")),
		Search:   strings.TrimSpace(query.Get("search")),
	}

	var err error
	if q.Skip, err = intQueryParam(r, "skip", 0); err != nil {
		return nil, err.Error()
	}
	if q.Limit, err = intQueryParam(r, "limit", 100); err != nil {
		return nil, err.Error()
	}
	if raw := query.Get("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, "price_max must be a number"
		}
		q.PriceMax = &v
	}
	if raw := query.Get("rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "rating must be an integer"
		}
		q.Rating = &v
	}
	if raw := query.Get("in_stock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, "in_stock must be a boolean"
		}
		q.InStock = &v
	}
	return q, ""
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := int64PathParam(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "product id must be a positive integer", nil)
		return
	}

	product, err := h.db.GetProductByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if product == nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Product with ID "+strconv.FormatInt(id, 10)+" not found", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, product, nil, start)
}

// CreateProduct handles POST /api/v1/products. Admin only.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req createProductRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	product := req.product()
	if err := h.db.CreateProduct(r.Context(), product); err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.invalidateCatalog()

	logging.Ctx(r.Context()).Info().
		Int64("product_id", product.ID).
		Str("category", sanitizeLogValue(product.Category)).
		Msg("Product created")

	respondSuccess(w, r, http.StatusCreated, product, nil, start)
}
