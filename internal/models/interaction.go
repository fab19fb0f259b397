// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package models

import (
	"fmt"
	"strings"
	"time"
)

// InteractionType is the kind of action a shopper performed on a product.
type InteractionType string

// Interaction types accepted by the tracking endpoint.
const (
	InteractionView           InteractionType = "view"
	InteractionClick          InteractionType = "click"
	InteractionAddToCart      InteractionType = "add_to_cart"
	InteractionRemoveFromCart InteractionType = "remove_from_cart"
	InteractionWishlist       InteractionType = "wishlist"
	InteractionPurchase       InteractionType = "purchase"
	InteractionReview         InteractionType = "review"
)

// InteractionTypes lists every valid interaction type.
var InteractionTypes = []InteractionType{
	InteractionView,
	InteractionClick,
	InteractionAddToCart,
	InteractionRemoveFromCart,
	InteractionWishlist,
	InteractionPurchase,
	InteractionReview,
}

// Valid reports whether t is one of InteractionTypes.
func (t InteractionType) Valid() bool {
	for _, known := range InteractionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (t InteractionType) String() string {
	return string(t)
}

// ParseInteractionType normalizes s (trim, lowercase) and validates it.
func ParseInteractionType(s string) (InteractionType, error) {
	t := InteractionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown interaction type %q", s)
	}
	return t, nil
}

// Interaction is one immutable row of the interaction log.
type Interaction struct {
	ID              int64           `json:"id"`
	UserID          *int64          `json:"user_id"`
	ProductID       int64           `json:"product_id"`
	InteractionType InteractionType `json:"interaction_type"`
	SessionID       *string         `json:"session_id"`
	Timestamp       time.Time       `json:"timestamp"`
	UserAgent       *string         `json:"user_agent,omitempty"`
	IPAddress       *string         `json:"ip_address,omitempty"`
}

// PopularProduct is one row of the popularity aggregate.
type PopularProduct struct {
	ProductID        int64 `json:"product_id"`
	InteractionCount int64 `json:"interaction_count"`
}
