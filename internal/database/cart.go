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
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// cartSelect reads a cart line with its product summary.
const cartSelect = `
SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at,
	p.title, p.price, p.icon, p.stock, p.images
FROM cart_items c
JOIN products p ON p.id = c.product_id`

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	var (
		it     models.CartItem
		p      models.CartProduct
		images string
	)
	if err := row.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt,
		&p.Title, &p.Price, &p.Icon, &p.Stock, &images); err != nil {
		return nil, err
	}
	p.ID = it.ProductID
	p.Images = []string{}
	if images != "" {
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("decode images for product %d: %w", p.ID, err)
		}
	}
	it.Product = &p
	it.Subtotal = math.Round(p.Price*float64(it.Quantity)*100) / 100
	return &it, nil
}

// cartItem loads one of userID's cart lines. Lines owned by other users
// report ErrCartItemNotFound.
func cartItem(ctx context.Context, q queryRower, userID, itemID int64) (*models.CartItem, error) {
	it, err := scanCartItem(q.QueryRowContext(ctx, cartSelect+` WHERE c.id = ? AND c.user_id = ?`, itemID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query cart item %d: %w", itemID, err)
	}
	return it, nil
}

// GetCart returns the user's cart lines in insertion order.
func (db *DB) GetCart(ctx context.Context, userID int64) (items []models.CartItem, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("list", "cart_items", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, cartSelect+` WHERE c.user_id = ? ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart for %d: %w", userID, err)
	}
	defer rows.Close()

	items = make([]models.CartItem, 0)
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart: %w", err)
	}
	return items, nil
}

// AddToCart adds quantity of productID to the user's cart, merging with an
// existing line. The resulting quantity may not exceed the product's stock.
func (db *DB) AddToCart(ctx context.Context, userID, productID int64, quantity int) (item *models.CartItem, err error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "cart_items", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cart transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var stock int
	err = tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = ?`, productID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrProductNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("query stock for %d: %w", productID, err)
	}

	var (
		lineID   int64
		existing int
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, quantity FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID).Scan(&lineID, &existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if quantity > stock {
			err = ErrInsufficientStock
			return nil, err
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity, created_at)
			VALUES (?, ?, ?, ?)
			RETURNING id`, userID, productID, quantity, db.now()).Scan(&lineID)
		if err != nil {
			return nil, fmt.Errorf("insert cart item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("query cart line: %w", err)
	default:
		if existing+quantity > stock {
			err = ErrInsufficientStock
			return nil, err
		}
		if _, err = tx.ExecContext(ctx, `UPDATE cart_items SET quantity = ? WHERE id = ?`,
			existing+quantity, lineID); err != nil {
			return nil, fmt.Errorf("update cart item %d: %w", lineID, err)
		}
	}

	if item, err = cartItem(ctx, tx, userID, lineID); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cart item: %w", err)
	}
	return item, nil
}

// UpdateCartItem sets the quantity of one of the user's cart lines.
func (db *DB) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) (item *models.CartItem, err error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "cart_items", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cart transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	item, err = cartItem(ctx, tx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if quantity > item.Product.Stock {
		err = ErrInsufficientStock
		return nil, err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, itemID); err != nil {
		return nil, fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cart item: %w", err)
	}

	item.Quantity = quantity
	item.Subtotal = math.Round(item.Product.Price*float64(quantity)*100) / 100
	return item, nil
}

// RemoveCartItem deletes one of the user's cart lines and returns the
// product it held.
func (db *DB) RemoveCartItem(ctx context.Context, userID, itemID int64) (productID int64, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "cart_items", start, err) }(time.Now())

	err = db.conn.QueryRowContext(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ? RETURNING product_id`, itemID, userID).Scan(&productID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrCartItemNotFound
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("delete cart item %d: %w", itemID, err)
	}
	return productID, nil
}

// ClearCart removes every line from the user's cart and returns how many
// were removed.
func (db *DB) ClearCart(ctx context.Context, userID int64) (n int, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("clear", "cart_items", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart for %d: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear cart rows: %w", err)
	}
	return int(affected), nil
}
