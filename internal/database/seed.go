// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"fmt"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// launchCatalog is the ToyVerse opening range.
var launchCatalog = []models.Product{
	{Title: "Avengers Tower", Price: 40.99, Icon: "🏢", Rating: 5, Category: "Sets", Stock: 10, Description: "Epic Avengers Tower playset"},
	{Title: "Venomized Groot", Price: 35.99, Icon: "🪴", Rating: 4, Category: "Plushies", Stock: 5, Description: "Cute Venomized Groot plush"},
	{Title: "Expecto Patronum", Price: 69.99, Icon: "🦌", Rating: 5, Category: "Sets", Stock: 8, Description: "Harry Potter Patronus set"},
	{Title: "The Child", Price: 40.99, Icon: "🐸", Rating: 5, Category: "Plushies", Stock: 20, Description: "Baby Yoda plush toy"},
	{Title: "Alpine Lodge", Price: 80.99, Icon: "🏠", Rating: 5, Category: "Sets", Stock: 3, Description: "Cozy Alpine Lodge building set"},
	{Title: "Monkey King", Price: 45.59, Icon: "🐵", Rating: 4, Category: "Blocks", Stock: 12, Description: "Monkey King action figure"},
	{Title: "Tusken Raider", Price: 19.99, Icon: "👺", Rating: 3, Category: "Sets", Stock: 15, Description: "Star Wars Tusken Raider"},
	{Title: "Hogwarts Castle", Price: 120.99, Icon: "🏰", Rating: 5, Category: "Sets", Stock: 2, Description: "Massive Hogwarts Castle set"},
	{Title: "Mighty Bowser", Price: 59.99, Icon: "🐢", Rating: 5, Category: "Blocks", Stock: 7, Description: "Super Mario Bowser figure"},
	{Title: "Dobby Experience", Price: 29.99, Icon: "🧦", Rating: 4, Category: "Plushies", Stock: 25, Description: "Dobby the House Elf plush"},
	{Title: "Orchid Plant", Price: 49.99, Icon: "🌺", Rating: 5, Category: "Sets", Stock: 18, Description: "Beautiful Orchid building set"},
	{Title: "London Skyline", Price: 39.99, Icon: "🎡", Rating: 5, Category: "Sets", Stock: 10, Description: "London landmarks building set"},
}

// LaunchCatalogSize is the number of products SeedCatalog inserts.
var LaunchCatalogSize = len(launchCatalog)

// SeedCatalog inserts the launch catalog when the products table is empty.
// It returns the number of products inserted.
func (db *DB) SeedCatalog(ctx context.Context) (int, error) {
	count, err := db.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range launchCatalog {
		p := launchCatalog[i]
		if err := db.CreateProduct(ctx, &p); err != nil {
			return i, fmt.Errorf("seed %q: %w", p.Title, err)
		}
	}
	return len(launchCatalog), nil
}
