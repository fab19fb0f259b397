// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package models

import (
	"math"
	"time"
)

// CartItem is a quantity of one product in a user's cart. Adding a product
// already in the cart increases the existing line.
type CartItem struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	CreatedAt time.Time    `json:"created_at"`
	Product   *CartProduct `json:"product,omitempty"`
	Subtotal  float64      `json:"subtotal"`
}

// CartProduct is the product summary embedded in a cart line.
type CartProduct struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Icon   string   `json:"icon"`
	Stock  int      `json:"stock"`
	Images []string `json:"images"`
}

// Cart is a user's cart with its total.
type Cart struct {
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// NewCart totals items. The total is rounded to cents.
func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	return Cart{Items: items, Total: math.Round(total*100) / 100, ItemCount: len(items)}
}
