// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// AddToWishlist saves productID for userID.
func (db *DB) AddToWishlist(ctx context.Context, userID, productID int64) (item *models.WishlistItem, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "wishlists", start, err) }(time.Now())

	product, err := scanProduct(db.conn.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, productID))
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrProductNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", productID, err)
	}

	var already bool
	if err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = ? AND product_id = ?)`,
		userID, productID).Scan(&already); err != nil {
		return nil, fmt.Errorf("check wishlist: %w", err)
	}
	if already {
		err = ErrAlreadyWishlisted
		return nil, err
	}

	item = &models.WishlistItem{UserID: userID, ProductID: productID, CreatedAt: db.now(), Product: product}
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO wishlists (user_id, product_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id`, userID, productID, item.CreatedAt).Scan(&item.ID)
	if err != nil {
		if isConstraintViolation(err) {
			err = ErrAlreadyWishlisted
			return nil, err
		}
		return nil, fmt.Errorf("insert wishlist item: %w", err)
	}
	return item, nil
}

// RemoveFromWishlist deletes productID from the user's wishlist.
func (db *DB) RemoveFromWishlist(ctx context.Context, userID, productID int64) (err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "wishlists", start, err) }(time.Now())

	var id int64
	err = db.conn.QueryRowContext(ctx,
		`DELETE FROM wishlists WHERE user_id = ? AND product_id = ? RETURNING id`,
		userID, productID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotWishlisted
		return err
	}
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}

// GetWishlist returns the user's wishlist with product details, newest first.
func (db *DB) GetWishlist(ctx context.Context, userID int64) (items []models.WishlistItem, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("list", "wishlists", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, user_id, product_id, created_at
		FROM wishlists
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist for %d: %w", userID, err)
	}
	defer rows.Close()

	items = make([]models.WishlistItem, 0)
	for rows.Next() {
		var it models.WishlistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	products, err := db.queryProducts(ctx, "wishlist_products",
		productSelect+` WHERE p.id IN (SELECT product_id FROM wishlists WHERE user_id = ?)`, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range items {
		items[i].Product = byID[items[i].ProductID]
	}
	return items, nil
}

// WishlistProductIDs returns the ids of every product on the user's wishlist.
func (db *DB) WishlistProductIDs(ctx context.Context, userID int64) (ids []int64, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("list_ids", "wishlists", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx,
		`SELECT product_id FROM wishlists WHERE user_id = ? ORDER BY product_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist ids for %d: %w", userID, err)
	}
	defer rows.Close()

	ids = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan wishlist id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsWishlisted reports whether productID is on the user's wishlist.
func (db *DB) IsWishlisted(ctx context.Context, userID, productID int64) (ok bool, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("exists", "wishlists", start, err) }(time.Now())

	err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id = ? AND product_id = ?)`,
		userID, productID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check wishlist: %w", err)
	}
	return ok, nil
}

// ClearWishlist empties the user's wishlist and returns the number of items removed.
func (db *DB) ClearWishlist(ctx context.Context, userID int64) (n int, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("clear", "wishlists", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `DELETE FROM wishlists WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear wishlist for %d: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear wishlist rows: %w", err)
	}
	return int(affected), nil
}
