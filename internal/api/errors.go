// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"errors"
	"net/http"

	"github.com/Armaghan195/ToyVerse/internal/database"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// respondServiceError maps engine and store errors onto HTTP responses.
// Unknown errors are treated as database failures since every service call
// ends in DuckDB.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidMode),
		errors.Is(err, recommend.ErrInvalidInteractionType),
		errors.Is(err, database.ErrInvalidRating),
		errors.Is(err, database.ErrInvalidQuantity):
		respondError(w, r, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
	case errors.Is(err, database.ErrNoReviewChanges):
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
	case errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrReviewNotFound),
		errors.Is(err, database.ErrNotWishlisted),
		errors.Is(err, database.ErrCartItemNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, database.ErrDuplicateReview),
		errors.Is(err, database.ErrAlreadyWishlisted),
		errors.Is(err, database.ErrInsufficientStock):
		respondError(w, r, http.StatusConflict, CodeConflict, err.Error(), nil)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeDatabaseError, "Request failed", err)
	}
}
