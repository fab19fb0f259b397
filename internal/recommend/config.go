// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import "fmt"

// Config contains the tuning knobs of the recommendation engine.
type Config struct {
	// HistoryLimit is how many recent interactions define the touched set.
	HistoryLimit int `json:"history_limit"`

	// CoOccurrenceFanout is how many co-occurring products are fetched per
	// touched product. The product at rank r contributes fanout - r.
	CoOccurrenceFanout int `json:"co_occurrence_fanout"`

	// PopularCap bounds the popularity strategy inside a personalized request.
	PopularCap int `json:"popular_cap"`

	// TopCategories is how many of the shopper's categories feed the
	// category strategy.
	TopCategories int `json:"top_categories"`

	// DefaultLimit is used by callers when a recommendation request omits its limit.
	DefaultLimit int `json:"default_limit"`

	// ProductDefaultLimit is the same for product recommendation requests.
	ProductDefaultLimit int `json:"product_default_limit"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit:        50,
		CoOccurrenceFanout:  10,
		PopularCap:          10,
		TopCategories:       3,
		DefaultLimit:        20,
		ProductDefaultLimit: 6,
	}
}

// Validate checks that every knob is usable.
func (c *Config) Validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.CoOccurrenceFanout < 1 {
		return fmt.Errorf("co_occurrence_fanout must be positive, got %d", c.CoOccurrenceFanout)
	}
	if c.PopularCap < 1 {
		return fmt.Errorf("popular_cap must be positive, got %d", c.PopularCap)
	}
	if c.TopCategories < 1 {
		return fmt.Errorf("top_categories must be positive, got %d", c.TopCategories)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.ProductDefaultLimit < 1 {
		return fmt.Errorf("product_default_limit must be positive, got %d", c.ProductDefaultLimit)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
