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

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// CreateReview stores r and recomputes the product's rating. The insert and
// the rating update share one transaction.
func (db *DB) CreateReview(ctx context.Context, r *models.Review) (err error) {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "reviews", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`, r.ProductID).Scan(&exists); err != nil {
		return fmt.Errorf("check product %d: %w", r.ProductID, err)
	}
	if !exists {
		err = ErrProductNotFound
		return err
	}

	var already bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id = ? AND user_id = ?)`,
		r.ProductID, r.UserID).Scan(&already); err != nil {
		return fmt.Errorf("check existing review: %w", err)
	}
	if already {
		err = ErrDuplicateReview
		return err
	}

	now := db.now()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, text, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		r.ProductID, r.UserID, r.Rating, r.Text, now,
	).Scan(&r.ID)
	if err != nil {
		if isConstraintViolation(err) {
			err = ErrDuplicateReview
			return err
		}
		return fmt.Errorf("insert review: %w", err)
	}
	r.CreatedAt = now

	if err = recomputeRating(ctx, tx, r.ProductID, now); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

// ListReviews returns a page of reviews for productID, newest first.
func (db *DB) ListReviews(ctx context.Context, productID int64, skip, limit int) (out []models.Review, err error) {
	out = make([]models.Review, 0)
	if limit <= 0 {
		return out, nil
	}
	if skip < 0 {
		skip = 0
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("list", "reviews", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, product_id, user_id, rating, text, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, productID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("query reviews for %d: %w", productID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

// GetReviewByID returns the review or ErrReviewNotFound.
func (db *DB) GetReviewByID(ctx context.Context, id int64) (review *models.Review, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("get_by_id", "reviews", start, err) }(time.Now())

	var r models.Review
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, rating, text, created_at
		FROM reviews WHERE id = ?`, id).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrReviewNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("query review %d: %w", id, err)
	}
	return &r, nil
}

// UpdateReview applies the non-nil fields of u to review id and recomputes
// the product rating in the same transaction.
func (db *DB) UpdateReview(ctx context.Context, id int64, u models.ReviewUpdate) (review *models.Review, err error) {
	if u.Rating == nil && u.Text == nil {
		return nil, ErrNoReviewChanges
	}
	if u.Rating != nil && (*u.Rating < 1 || *u.Rating > 5) {
		return nil, ErrInvalidRating
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "reviews", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin review transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var r models.Review
	err = tx.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, rating, text, created_at
		FROM reviews WHERE id = ?`, id).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Text, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrReviewNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("query review %d: %w", id, err)
	}

	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.Text != nil {
		r.Text = *u.Text
	}
	if _, err = tx.ExecContext(ctx, `UPDATE reviews SET rating = ?, text = ? WHERE id = ?`,
		r.Rating, r.Text, id); err != nil {
		return nil, fmt.Errorf("update review %d: %w", id, err)
	}
	if err = recomputeRating(ctx, tx, r.ProductID, db.now()); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review update: %w", err)
	}
	return &r, nil
}

// DeleteReview removes review id and recomputes the product rating. A product
// left without reviews drops to rating 0.
func (db *DB) DeleteReview(ctx context.Context, id int64) (err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "reviews", start, err) }(time.Now())

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var productID int64
	err = tx.QueryRowContext(ctx, `DELETE FROM reviews WHERE id = ? RETURNING product_id`, id).Scan(&productID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrReviewNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if err = recomputeRating(ctx, tx, productID, db.now()); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit review delete: %w", err)
	}
	return nil
}

// recomputeRating sets the product rating to the mean of its reviews rounded
// half to even, or 0 when none remain.
func recomputeRating(ctx context.Context, tx *sql.Tx, productID int64, now time.Time) error {
	var avg sql.NullFloat64
	if err := tx.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM reviews WHERE product_id = ?`, productID).Scan(&avg); err != nil {
		return fmt.Errorf("average rating for %d: %w", productID, err)
	}
	rating := 0
	if avg.Valid {
		rating = roundRating(avg.Float64)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE products SET rating = ?, updated_at = ? WHERE id = ?`,
		rating, now, productID); err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}

func roundRating(avg float64) int {
	return int(math.RoundToEven(avg))
}
