// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"sort"
)

type scoredCandidate struct {
	productID int64
	score     float64
}

// collaborativeStrategy scores products that co-occur with the touched ones.
// Each touched product contributes fanout - rank to every co-occurring
// product, and the highest totals win.
func (e *Engine) collaborativeStrategy(ctx context.Context, touchedIDs []int64, limit int) ([]RecommendationItem, error) {
	if limit <= 0 || len(touchedIDs) == 0 {
		return nil, nil
	}

	fanout := e.config.CoOccurrenceFanout
	scores := make(map[int64]float64)
	var order []int64

	for _, id := range touchedIDs {
		related, err := e.store.CoOccurringProducts(ctx, id, fanout)
		if err != nil {
			return nil, err
		}
		for rank, rid := range related {
			if _, ok := scores[rid]; !ok {
				order = append(order, rid)
			}
			scores[rid] += float64(fanout - rank)
		}
	}

	ranked := make([]scoredCandidate, len(order))
	for i, id := range order {
		ranked[i] = scoredCandidate{productID: id, score: scores[id]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]RecommendationItem, 0, len(ranked))
	for _, c := range ranked {
		p, err := e.catalog.GetProductByID(ctx, c.productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		score := c.score
		items = append(items, RecommendationItem{
			Product: *p,
			Reason:  ReasonCollaborative,
			Score:   &score,
			Source:  SourceCollaborative,
		})
	}
	return items, nil
}
