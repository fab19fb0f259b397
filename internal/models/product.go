// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package models

import (
	"fmt"
	"time"
)

// Product is a catalog entry. The recommendation engine only reads products.
type Product struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Price               float64   `json:"price"`
	Category            string    `json:"category"`
	Stock               int       `json:"stock"`
	Rating              int       `json:"rating"` // 0 when unrated, else rounded review average 1-5
	Icon                string    `json:"icon,omitempty"`
	Description         string    `json:"description,omitempty"`
	DetailedDescription string    `json:"detailed_description,omitempty"`
	Images              []string  `json:"images"`
	ReviewCount         int       `json:"review_count"`
	IsInStock           bool      `json:"is_in_stock"`
	FormattedPrice      string    `json:"formatted_price"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Finalize fills the derived fields from the stored ones.
func (p *Product) Finalize() {
	p.IsInStock = p.Stock > 0
	p.FormattedPrice = fmt.Sprintf("$%.2f", p.Price)
	if p.Images == nil {
		p.Images = []string{}
	}
}

// RatingWeight is the "Highly rated" ordering key: rating * (review_count + 1).
// Rated products without reviews still count once.
func (p *Product) RatingWeight() int {
	return p.Rating * (p.ReviewCount + 1)
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category  string
	MaxPrice  *float64
	MinRating *int
	InStock   *bool
	Search    string
	Skip      int
	Limit     int
}
