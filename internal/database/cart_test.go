// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

func TestAddToCart_MergesLines(t *testing.T) {
	db := setupTestDB(t, true)
	ctx := context.Background()

	// Alpine Lodge has 3 in stock.
	first, err := db.AddToCart(ctx, 1, 5, 1)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	second, err := db.AddToCart(ctx, 1, 5, 2)
	if err != nil {
		t.Fatalf("AddToCart() merge error = %v", err)
	}
	if second.ID != first.ID || second.Quantity != 3 {
		t.Errorf("merged line = %+v, want id %d quantity 3", second, first.ID)
	}
	if second.Subtotal != 242.97 {
		t.Errorf("subtotal = %v, want 242.97", second.Subtotal)
	}
	if second.Product == nil || second.Product.Title != "Alpine Lodge" {
		t.Errorf("product summary = %+v", second.Product)
	}

	if _, err := db.AddToCart(ctx, 1, 5, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("over-stock AddToCart() error = %v, want ErrInsufficientStock", err)
	}

	items, err := db.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Errorf("cart after failed add = %+v", items)
	}
}

func TestAddToCart_Errors(t *testing.T) {
	db := setupTestDB(t, true)
	ctx := context.Background()

	tests := []struct {
		name      string
		productID int64
		quantity  int
		want      error
	}{
		{"missing product", 404, 1, ErrProductNotFound},
		{"zero quantity", 1, 0, ErrInvalidQuantity},
		{"over stock", 8, 3, ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.AddToCart(ctx, 1, tt.productID, tt.quantity); !errors.Is(err, tt.want) {
				t.Errorf("AddToCart() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCart_UpdateRemoveClear(t *testing.T) {
	db := setupTestDB(t, true)
	ctx := context.Background()

	line, err := db.AddToCart(ctx, 1, 10, 1)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if _, err := db.AddToCart(ctx, 1, 4, 2); err != nil {
		t.Fatalf("AddToCart(4) error = %v", err)
	}

	updated, err := db.UpdateCartItem(ctx, 1, line.ID, 4)
	if err != nil {
		t.Fatalf("UpdateCartItem() error = %v", err)
	}
	if updated.Quantity != 4 || updated.Subtotal != 119.96 {
		t.Errorf("updated line = %+v", updated)
	}

	if _, err := db.UpdateCartItem(ctx, 2, line.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("UpdateCartItem(other user) error = %v, want ErrCartItemNotFound", err)
	}
	if _, err := db.UpdateCartItem(ctx, 1, line.ID, 26); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("UpdateCartItem(26) error = %v, want ErrInsufficientStock", err)
	}

	items, err := db.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	cart := models.NewCart(items)
	if cart.ItemCount != 2 || cart.Total != 201.94 {
		t.Errorf("cart = count %d total %v, want 2 and 201.94", cart.ItemCount, cart.Total)
	}

	if _, err := db.RemoveCartItem(ctx, 2, line.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("RemoveCartItem(other user) error = %v, want ErrCartItemNotFound", err)
	}
	productID, err := db.RemoveCartItem(ctx, 1, line.ID)
	if err != nil {
		t.Fatalf("RemoveCartItem() error = %v", err)
	}
	if productID != line.ProductID {
		t.Errorf("RemoveCartItem() product = %d, want %d", productID, line.ProductID)
	}

	n, err := db.ClearCart(ctx, 1)
	if err != nil || n != 1 {
		t.Errorf("ClearCart() = %d, %v, want 1", n, err)
	}
	items, err = db.GetCart(ctx, 1)
	if err != nil || len(items) != 0 {
		t.Errorf("GetCart() after clear = %v, %v", items, err)
	}
}
