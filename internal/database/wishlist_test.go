// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"errors"
	"testing"
)

func TestWishlist_Lifecycle(t *testing.T) {
	db := setupTestDB(t, true)
	ctx := context.Background()

	item, err := db.AddToWishlist(ctx, 1, 8)
	if err != nil {
		t.Fatalf("AddToWishlist() error = %v", err)
	}
	if item.ID == 0 || item.Product == nil || item.Product.Title != "Hogwarts Castle" {
		t.Errorf("AddToWishlist() = %+v", item)
	}
	if _, err := db.AddToWishlist(ctx, 1, 3); err != nil {
		t.Fatalf("AddToWishlist(3) error = %v", err)
	}

	if _, err := db.AddToWishlist(ctx, 1, 8); !errors.Is(err, ErrAlreadyWishlisted) {
		t.Errorf("duplicate AddToWishlist() error = %v, want ErrAlreadyWishlisted", err)
	}
	if _, err := db.AddToWishlist(ctx, 1, 404); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("AddToWishlist(404) error = %v, want ErrProductNotFound", err)
	}

	ids, err := db.WishlistProductIDs(ctx, 1)
	if err != nil {
		t.Fatalf("WishlistProductIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 8 {
		t.Errorf("WishlistProductIDs() = %v, want [3 8]", ids)
	}

	items, err := db.GetWishlist(ctx, 1)
	if err != nil {
		t.Fatalf("GetWishlist() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("GetWishlist() len = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.Product == nil || it.Product.ID != it.ProductID {
			t.Errorf("wishlist item %d missing product: %+v", it.ID, it)
		}
	}

	ok, err := db.IsWishlisted(ctx, 1, 8)
	if err != nil || !ok {
		t.Errorf("IsWishlisted(1, 8) = %v, %v, want true", ok, err)
	}
	ok, err = db.IsWishlisted(ctx, 2, 8)
	if err != nil || ok {
		t.Errorf("IsWishlisted(2, 8) = %v, %v, want false", ok, err)
	}

	if err := db.RemoveFromWishlist(ctx, 1, 8); err != nil {
		t.Fatalf("RemoveFromWishlist() error = %v", err)
	}
	if err := db.RemoveFromWishlist(ctx, 1, 8); !errors.Is(err, ErrNotWishlisted) {
		t.Errorf("second RemoveFromWishlist() error = %v, want ErrNotWishlisted", err)
	}

	n, err := db.ClearWishlist(ctx, 1)
	if err != nil || n != 1 {
		t.Errorf("ClearWishlist() = %d, %v, want 1", n, err)
	}
	empty, err := db.GetWishlist(ctx, 1)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("GetWishlist() after clear = %v, %v", empty, err)
	}
}
