// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import "github.com/Armaghan195/ToyVerse/internal/models"

// recommendationsQuery is GET /recommendations. Limit bounds are checked
// against the configured max separately.
type recommendationsQuery struct {
	Type  string `json:"type" validate:"rec_mode"`
	Limit int    `json:"limit" validate:"min=1"`
}

// productRecommendationsQuery is GET /recommendations/product/{id}.
type productRecommendationsQuery struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Limit     int   `json:"limit" validate:"min=1"`
}

// trackRequest is POST /recommendations/track, from query or JSON body.
type trackRequest struct {
	ProductID       int64  `json:"product_id" validate:"required,gt=0"`
	InteractionType string `json:"interaction_type" validate:"required,interaction_type"`
}

// trackResponse is the data of a successful track call.
type trackResponse struct {
	Message     string              `json:"message"`
	Interaction *models.Interaction `json:"interaction"`
}

// productListQuery is GET /products.
type productListQuery struct {
	Category string   `json:"category" validate:"max=50"`
	PriceMax *float64 `json:"price_max" validate:"omitempty,gt=0"`
	Rating   *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	Search   string   `json:"search" validate:"max=200"`
	InStock  *bool    `json:"in_stock"`
	Skip     int      `json:"skip" validate:"min=0"`
	Limit    int      `json:"limit" validate:"min=1,max=100"`
}

func (q *productListQuery) filter() models.ProductFilter {
	return models.ProductFilter{
		Category:  q.Category,
		MaxPrice:  q.PriceMax,
		MinRating: q.Rating,
		InStock:   q.InStock,
		Search:    q.Search,
		Skip:      q.Skip,
		Limit:     q.Limit,
	}
}

// createProductRequest is POST /products.
type createProductRequest struct {
	Title               string   `json:"title" validate:"required,min=1,max=200"`
	Price               float64  `json:"price" validate:"gt=0"`
	Category            string   `json:"category" validate:"required,min=1,max=50"`
	Stock               int      `json:"stock" validate:"min=0"`
	Rating              int      `json:"rating" validate:"min=0,max=5"`
	Icon                string   `json:"icon" validate:"max=10"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailed_description"`
	Images              []string `json:"images" validate:"max=20,dive,max=500"`
}

func (c *createProductRequest) product() *models.Product {
	return &models.Product{
		Title:               c.Title,
		Price:               c.Price,
		Category:            c.Category,
		Stock:               c.Stock,
		Rating:              c.Rating,
		Icon:                c.Icon,
		Description:         c.Description,
		DetailedDescription: c.DetailedDescription,
		Images:              c.Images,
	}
}

// createReviewRequest is POST /reviews.
type createReviewRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Text      string `json:"text" validate:"max=2000"`
}

// reviewListQuery is GET /reviews/{product_id}.
type reviewListQuery struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Skip      int   `json:"skip" validate:"min=0"`
	Limit     int   `json:"limit" validate:"min=1,max=100"`
}

// updateReviewRequest is PUT /reviews/{review_id}. Omitted fields are kept.
type updateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Text   *string `json:"text" validate:"omitempty,max=2000"`
}

// wishlistAddRequest is POST /wishlist/add.
type wishlistAddRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// wishlistCheckResponse is GET /wishlist/check/{product_id}.
type wishlistCheckResponse struct {
	ProductID    int64 `json:"product_id"`
	IsWishlisted bool  `json:"is_wishlisted"`
}

// wishlistIDsResponse is GET /wishlist/product-ids.
type wishlistIDsResponse struct {
	ProductIDs []int64 `json:"product_ids"`
}

// cartAddRequest is POST /cart/add. Quantity defaults to 1.
type cartAddRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,min=1"`
}

// cartUpdateRequest is PUT /cart/{item_id}.
type cartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// messageResponse carries a human-readable outcome.
type messageResponse struct {
	Message string `json:"message"`
}
