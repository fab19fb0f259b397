// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"sync"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// fakeStore implements InteractionStore in memory.
type fakeStore struct {
	mu sync.Mutex

	byUser    map[int64][]models.Interaction
	bySession map[string][]models.Interaction
	popular   []models.PopularProduct
	related   map[int64][]int64
	recorded  []models.Interaction

	historyErr error
	recordErr  error

	userCalls    int
	sessionCalls int
	popularCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byUser:    make(map[int64][]models.Interaction),
		bySession: make(map[string][]models.Interaction),
		related:   make(map[int64][]int64),
	}
}

// viewed builds a most-recent-first history from product ids.
func viewed(ids ...int64) []models.Interaction {
	out := make([]models.Interaction, len(ids))
	for i, id := range ids {
		out[i] = models.Interaction{ID: int64(len(ids) - i), ProductID: id, InteractionType: models.InteractionView}
	}
	return out
}

func (f *fakeStore) RecordInteraction(_ context.Context, in *models.Interaction) (*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	stored := *in
	stored.ID = int64(len(f.recorded) + 1)
	f.recorded = append(f.recorded, stored)
	return &stored, nil
}

func (f *fakeStore) InteractionsByUser(_ context.Context, userID int64, _ models.InteractionType, limit int) ([]models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return truncate(f.byUser[userID], limit), nil
}

func (f *fakeStore) InteractionsBySession(_ context.Context, sessionID string, limit int) ([]models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return truncate(f.bySession[sessionID], limit), nil
}

func (f *fakeStore) PopularProducts(_ context.Context, limit int) ([]models.PopularProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.popularCalls++
	return truncate(f.popular, limit), nil
}

func (f *fakeStore) CoOccurringProducts(_ context.Context, productID int64, limit int) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return truncate(f.related[productID], limit), nil
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// fakeCatalog implements Catalog over a fixed product list ordered by id.
type fakeCatalog struct {
	products []models.Product
	err      error
}

func (c *fakeCatalog) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) GetProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []models.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetAllProducts(_ context.Context) ([]models.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return append([]models.Product(nil), c.products...), nil
}

// testCatalog:
//
//	1 Sets r5, 2 Sets r4, 3 Plushies r5, 4 Plushies r3,
//	5 Blocks r5, 6 Blocks r2, 7 Sets r1
func testCatalog() *fakeCatalog {
	mk := func(id int64, category string, rating int) models.Product {
		p := models.Product{ID: id, Title: category + "-toy", Category: category, Rating: rating, Price: 10, Stock: 1}
		p.Finalize()
		return p
	}
	return &fakeCatalog{products: []models.Product{
		mk(1, "Sets", 5),
		mk(2, "Sets", 4),
		mk(3, "Plushies", 5),
		mk(4, "Plushies", 3),
		mk(5, "Blocks", 5),
		mk(6, "Blocks", 2),
		mk(7, "Sets", 1),
	}}
}

// fakePublisher records published interactions.
type fakePublisher struct {
	mu        sync.Mutex
	published []models.Interaction
	err       error
}

func (p *fakePublisher) PublishInteraction(_ context.Context, in *models.Interaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, *in)
	return p.err
}
