// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// popularityFallback returns up to n items: the most interacted-with
// products first, then the highest rated catalog entries.
func (e *Engine) popularityFallback(ctx context.Context, n int) ([]RecommendationItem, error) {
	items := make([]RecommendationItem, 0, n)
	if n <= 0 {
		return items, nil
	}

	popular, err := e.store.PopularProducts(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("popular products: %w", err)
	}

	present := make(map[int64]struct{}, n)
	for _, pp := range popular {
		p, err := e.catalog.GetProductByID(ctx, pp.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		count := pp.InteractionCount
		items = append(items, RecommendationItem{
			Product:          *p,
			Reason:           ReasonPopular,
			InteractionCount: &count,
			Source:           SourcePopular,
		})
		present[p.ID] = struct{}{}
	}

	if len(items) >= n {
		return items, nil
	}

	all, err := e.catalog.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("all products: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RatingWeight() > all[j].RatingWeight()
	})

	for i := range all {
		if len(items) >= n {
			break
		}
		if _, ok := present[all[i].ID]; ok {
			continue
		}
		items = append(items, RecommendationItem{
			Product: all[i],
			Reason:  ReasonHighlyRated,
			Source:  SourceHighlyRated,
		})
		present[all[i].ID] = struct{}{}
	}
	return items, nil
}
