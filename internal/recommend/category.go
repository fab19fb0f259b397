// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// topCategories returns up to n categories of products ordered by how many
// products fall in each. Equal counts keep first-encounter order.
func topCategories(products []models.Product, n int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range products {
		c := products[i].Category
		if _, ok := counts[c]; !ok {
			order = append(order, c)
		}
		counts[c]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// categoryStrategy recommends untouched products from the shopper's
// preferred categories.
func (e *Engine) categoryStrategy(ctx context.Context, touched []models.Product, exclude map[int64]struct{}, limit int) ([]RecommendationItem, error) {
	if limit <= 0 || len(touched) == 0 {
		return nil, nil
	}

	var items []RecommendationItem
	for _, category := range topCategories(touched, e.config.TopCategories) {
		if len(items) >= limit {
			break
		}
		products, err := e.catalog.GetProductsByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		reason := fmt.Sprintf(reasonSimilarFormat, category)
		for i := range products {
			if len(items) >= limit {
				break
			}
			if _, ok := exclude[products[i].ID]; ok {
				continue
			}
			items = append(items, RecommendationItem{
				Product: products[i],
				Reason:  reason,
				Source:  SourceCategory,
			})
		}
	}
	return items, nil
}
