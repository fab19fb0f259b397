// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseInteractionType(t *testing.T) {
	tests := []struct {
		input   string
		want    InteractionType
		wantErr bool
	}{
		{"view", InteractionView, false},
		{"add_to_cart", InteractionAddToCart, false},
		{" Purchase ", InteractionPurchase, false},
		{"WISHLIST", InteractionWishlist, false},
		{"", "", true},
		{"like", "", true},
		{"view; DROP TABLE products", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInteractionType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInteractionType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseInteractionType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInteractionTypes_AllValid(t *testing.T) {
	for _, it := range InteractionTypes {
		if !it.Valid() {
			t.Errorf("%q should be valid", it)
		}
	}
	if InteractionType("bogus").Valid() {
		t.Error("bogus should not be valid")
	}
}

func TestProduct_Finalize(t *testing.T) {
	p := Product{ID: 1, Title: "Hogwarts Castle", Price: 120.99, Stock: 0}
	p.Finalize()

	if p.IsInStock {
		t.Error("zero stock should not be in stock")
	}
	if p.FormattedPrice != "$120.99" {
		t.Errorf("FormattedPrice = %q, want $120.99", p.FormattedPrice)
	}
	if p.Images == nil {
		t.Error("Images should be an empty slice, not nil")
	}

	p.Stock = 2
	p.Finalize()
	if !p.IsInStock {
		t.Error("positive stock should be in stock")
	}
}

func TestProduct_RatingWeight(t *testing.T) {
	tests := []struct {
		rating, reviews, want int
	}{
		{5, 0, 5},
		{4, 2, 12},
		{0, 10, 0},
	}
	for _, tt := range tests {
		p := Product{Rating: tt.rating, ReviewCount: tt.reviews}
		if got := p.RatingWeight(); got != tt.want {
			t.Errorf("RatingWeight(rating=%d, reviews=%d) = %d, want %d", tt.rating, tt.reviews, got, tt.want)
		}
	}
}

func TestInteraction_JSONNullableFields(t *testing.T) {
	uid := int64(42)
	data, err := json.Marshal(Interaction{ID: 1, UserID: &uid, ProductID: 7, InteractionType: InteractionView})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"user_id":42`) {
		t.Errorf("expected user_id 42 in %s", out)
	}
	if !strings.Contains(out, `"session_id":null`) {
		t.Errorf("expected null session_id in %s", out)
	}
	if strings.Contains(out, "ip_address") {
		t.Errorf("nil ip_address should be omitted: %s", out)
	}
}
