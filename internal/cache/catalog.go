// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/models"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

const (
	keyAll            = "all"
	keyProductPrefix  = "product:"
	keyCategoryPrefix = "category:"
)

// Catalog is a read-through cache in front of a recommend.Catalog.
type Catalog struct {
	inner recommend.Catalog
	lru   *LRU[[]models.Product]

	// generation is bumped by Invalidate; fetches that began under an older
	// generation are not stored. mu orders store against Invalidate.
	mu         sync.Mutex
	generation atomic.Uint64
}

var _ recommend.Catalog = (*Catalog)(nil)

// NewCatalog wraps inner with a cache of size entries kept for ttl.
func NewCatalog(inner recommend.Catalog, size int, ttl time.Duration) *Catalog {
	return &Catalog{
		inner: inner,
		lru:   NewLRU[[]models.Product](size, ttl),
	}
}

// GetProductByID returns the product or nil when absent. Absent results are
// not cached.
func (c *Catalog) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	key := keyProductPrefix + strconv.FormatInt(id, 10)
	if cached, ok := c.get(key); ok {
		p := cached[0]
		return &p, nil
	}

	gen := c.generation.Load()
	p, err := c.inner.GetProductByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	c.store(gen, key, []models.Product{*p})
	return p, nil
}

// GetProductsByCategory returns the products of category ordered by id.
func (c *Catalog) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	key := keyCategoryPrefix + category
	if cached, ok := c.get(key); ok {
		return cached, nil
	}

	gen := c.generation.Load()
	products, err := c.inner.GetProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.store(gen, key, products)
	return clone(products), nil
}

// GetAllProducts returns the whole catalog ordered by id.
func (c *Catalog) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if cached, ok := c.get(keyAll); ok {
		return cached, nil
	}

	gen := c.generation.Load()
	products, err := c.inner.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.store(gen, keyAll, products)
	return clone(products), nil
}

// Invalidate drops every cached lookup.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation.Add(1)
	c.lru.Clear()
}

// Stats returns hit and miss counts and the number of cached lookups.
func (c *Catalog) Stats() (hits, misses int64, size int) {
	return c.lru.Stats()
}

// get returns a copy so callers may reorder the slice.
func (c *Catalog) get(key string) ([]models.Product, bool) {
	cached, ok := c.lru.Get(key)
	metrics.RecordCatalogCacheLookup(ok)
	if !ok {
		return nil, false
	}
	return clone(cached), true
}

func (c *Catalog) store(gen uint64, key string, products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation.Load() != gen {
		return
	}
	c.lru.Add(key, clone(products))
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
