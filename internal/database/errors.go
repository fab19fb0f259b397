// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/Armaghan195/ToyVerse/internal/logging"
)

var (
	// ErrProductNotFound is returned by writes that reference a missing product.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateReview is returned when a user reviews the same product twice.
	ErrDuplicateReview = errors.New("user has already reviewed this product")

	// ErrInvalidRating is returned for review ratings outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrReviewNotFound is returned for an unknown review id.
	ErrReviewNotFound = errors.New("review not found")

	// ErrNoReviewChanges is returned by UpdateReview when no field is set.
	ErrNoReviewChanges = errors.New("no fields to update")

	// ErrAlreadyWishlisted is returned when the product is already on the wishlist.
	ErrAlreadyWishlisted = errors.New("product is already in your wishlist")

	// ErrNotWishlisted is returned when removing a product that is not on the wishlist.
	ErrNotWishlisted = errors.New("product not found in your wishlist")

	// ErrCartItemNotFound is returned for a cart item that does not exist or
	// belongs to another user.
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrInsufficientStock is returned when a cart quantity exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity is returned for cart quantities below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and ignores the error. Used on error paths.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isConstraintViolation reports whether err came from a PRIMARY KEY or
// UNIQUE constraint.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "violates unique constraint") ||
		strings.Contains(msg, "violates primary key constraint")
}
