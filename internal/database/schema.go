// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns the timeout context used for DDL.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences and core tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// createIndexes creates secondary indexes for the interaction scans.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS products_id_seq START 1;`,
	`CREATE SEQUENCE IF NOT EXISTS reviews_id_seq START 1;`,
	`CREATE SEQUENCE IF NOT EXISTS product_interactions_id_seq START 1;`,
	`CREATE SEQUENCE IF NOT EXISTS wishlists_id_seq START 1;`,
	`CREATE SEQUENCE IF NOT EXISTS cart_items_id_seq START 1;`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY DEFAULT nextval('products_id_seq'),
		title TEXT NOT NULL,
		price DOUBLE NOT NULL,
		category TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		rating INTEGER NOT NULL DEFAULT 0,
		icon TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		detailed_description TEXT NOT NULL DEFAULT '',
		images TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT PRIMARY KEY DEFAULT nextval('reviews_id_seq'),
		product_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		rating INTEGER NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		UNIQUE (product_id, user_id)
	);`,

	`CREATE TABLE IF NOT EXISTS product_interactions (
		id BIGINT PRIMARY KEY DEFAULT nextval('product_interactions_id_seq'),
		user_id BIGINT,
		product_id BIGINT NOT NULL,
		interaction_type TEXT NOT NULL,
		session_id TEXT,
		timestamp TIMESTAMP NOT NULL,
		user_agent TEXT,
		ip_address TEXT
	);`,

	`CREATE TABLE IF NOT EXISTS wishlists (
		id BIGINT PRIMARY KEY DEFAULT nextval('wishlists_id_seq'),
		user_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, product_id)
	);`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT PRIMARY KEY DEFAULT nextval('cart_items_id_seq'),
		user_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, product_id)
	);`,
}

var indexCreationQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON product_interactions(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_session ON product_interactions(session_id);`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_product ON product_interactions(product_id);`,
	`CREATE INDEX IF NOT EXISTS idx_wishlists_user ON wishlists(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id);`,
}
