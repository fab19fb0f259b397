// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"fmt"
	"time"
)

// ProductRecommendations returns up to limit products related to productID:
// other products in its category first, then products its viewers also
// interacted with. An unknown product yields an empty list.
func (e *Engine) ProductRecommendations(ctx context.Context, productID int64, limit int) ([]RecommendationItem, error) {
	start := time.Now()
	items := make([]RecommendationItem, 0, max(limit, 0))
	if limit <= 0 {
		return items, nil
	}

	product, err := e.catalog.GetProductByID(ctx, productID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	if product == nil {
		return items, nil
	}

	present := map[int64]struct{}{productID: {}}

	sameCategory, err := e.catalog.GetProductsByCategory(ctx, product.Category)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("load category %q: %w", product.Category, err)
	}
	reason := fmt.Sprintf(reasonMoreOfCategory, product.Category)
	for i := range sameCategory {
		if len(items) >= limit {
			break
		}
		if _, ok := present[sameCategory[i].ID]; ok {
			continue
		}
		present[sameCategory[i].ID] = struct{}{}
		items = append(items, RecommendationItem{
			Product: sameCategory[i],
			Reason:  reason,
			Source:  SourceSameCategory,
		})
	}

	if len(items) < limit {
		related, err := e.store.CoOccurringProducts(ctx, productID, limit)
		if err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("co-occurring products for %d: %w", productID, err)
		}
		for _, rid := range related {
			if len(items) >= limit {
				break
			}
			if _, ok := present[rid]; ok {
				continue
			}
			p, err := e.catalog.GetProductByID(ctx, rid)
			if err != nil {
				e.errorCount.Add(1)
				return nil, fmt.Errorf("load related product %d: %w", rid, err)
			}
			if p == nil {
				continue
			}
			present[rid] = struct{}{}
			items = append(items, RecommendationItem{
				Product: *p,
				Reason:  ReasonAlsoViewed,
				Source:  SourceAlsoViewed,
			})
		}
	}

	e.observe("product", start, items)
	return items, nil
}
