// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

func TestWishlist(t *testing.T) {
	srv := newTestServer(t)
	shopper := withBearer(srv.token(t, 21, auth.RoleCustomer))

	t.Run("anonymous rejected", func(t *testing.T) {
		expectErrorCode(t, srv.do(t, http.MethodGet, "/api/v1/wishlist", nil), http.StatusUnauthorized, CodeUnauthorized)
		rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/add", map[string]int{"product_id": 8})
		expectErrorCode(t, rec, http.StatusUnauthorized, CodeUnauthorized)
	})

	t.Run("add", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/add", map[string]int{"product_id": 8}, shopper)
		expectStatus(t, rec, http.StatusCreated)
		var item models.WishlistItem
		decodeData(t, decodeEnvelope(t, rec), &item)
		if item.ID == 0 || item.UserID != 21 || item.Product == nil || item.Product.Title != "Hogwarts Castle" {
			t.Errorf("item = %+v", item)
		}
	})

	t.Run("add records wishlist interaction", func(t *testing.T) {
		stored, err := srv.db.InteractionsByUser(context.Background(), 21, models.InteractionWishlist, 10)
		if err != nil {
			t.Fatalf("InteractionsByUser() error = %v", err)
		}
		if len(stored) != 1 || stored[0].ProductID != 8 {
			t.Errorf("wishlist interactions = %+v", stored)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/add", map[string]int{"product_id": 8}, shopper)
		expectErrorCode(t, rec, http.StatusConflict, CodeConflict)
	})

	t.Run("unknown product", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/add", map[string]int{"product_id": 9999}, shopper)
		expectErrorCode(t, rec, http.StatusNotFound, CodeNotFound)
	})

	t.Run("list ids and check", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/wishlist/product-ids", nil, shopper)
		expectStatus(t, rec, http.StatusOK)
		var ids wishlistIDsResponse
		decodeData(t, decodeEnvelope(t, rec), &ids)
		if len(ids.ProductIDs) != 1 || ids.ProductIDs[0] != 8 {
			t.Errorf("product ids = %v", ids.ProductIDs)
		}

		rec = srv.do(t, http.MethodGet, "/api/v1/wishlist/check/8", nil, shopper)
		expectStatus(t, rec, http.StatusOK)
		var check wishlistCheckResponse
		decodeData(t, decodeEnvelope(t, rec), &check)
		if !check.IsWishlisted || check.ProductID != 8 {
			t.Errorf("check = %+v", check)
		}

		rec = srv.do(t, http.MethodGet, "/api/v1/wishlist", nil, shopper)
		expectStatus(t, rec, http.StatusOK)
		if env := decodeEnvelope(t, rec); env.Metadata.Count == nil || *env.Metadata.Count != 1 {
			t.Errorf("wishlist count = %v, want 1", env.Metadata.Count)
		}
	})

	t.Run("remove", func(t *testing.T) {
		expectStatus(t, srv.do(t, http.MethodDelete, "/api/v1/wishlist/remove/8", nil, shopper), http.StatusNoContent)
		rec := srv.do(t, http.MethodDelete, "/api/v1/wishlist/remove/8", nil, shopper)
		expectErrorCode(t, rec, http.StatusNotFound, CodeNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		for _, id := range []int{1, 2} {
			rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/add", map[string]int{"product_id": id}, shopper)
			expectStatus(t, rec, http.StatusCreated)
		}
		rec := srv.do(t, http.MethodDelete, "/api/v1/wishlist/clear", nil, shopper)
		expectStatus(t, rec, http.StatusOK)
		var msg messageResponse
		decodeData(t, decodeEnvelope(t, rec), &msg)
		if msg.Message != "Cleared 2 items from wishlist" {
			t.Errorf("message = %q", msg.Message)
		}
	})
}
