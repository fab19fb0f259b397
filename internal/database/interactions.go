// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

const interactionColumns = `id, user_id, product_id, interaction_type, session_id, timestamp, user_agent, ip_address`

// RecordInteraction appends one interaction. A zero Timestamp defaults to now
// (UTC). The stored row, including its id, is returned.
func (db *DB) RecordInteraction(ctx context.Context, in *models.Interaction) (stored *models.Interaction, err error) {
	if in == nil {
		return nil, fmt.Errorf("record interaction: nil interaction")
	}
	if !in.InteractionType.Valid() {
		return nil, fmt.Errorf("record interaction: unknown interaction type %q", in.InteractionType)
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "product_interactions", start, err) }(time.Now())

	row := *in
	if row.Timestamp.IsZero() {
		row.Timestamp = db.now()
	} else {
		row.Timestamp = row.Timestamp.UTC()
	}

	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO product_interactions (user_id, product_id, interaction_type, session_id, timestamp, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		nullInt64(row.UserID), row.ProductID, string(row.InteractionType), nullString(row.SessionID),
		row.Timestamp, nullString(row.UserAgent), nullString(row.IPAddress),
	).Scan(&row.ID)
	if err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}
	return &row, nil
}

// InteractionsByUser returns the user's interactions most-recent-first. An
// empty interactionType matches every type.
func (db *DB) InteractionsByUser(ctx context.Context, userID int64, interactionType models.InteractionType, limit int) ([]models.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM product_interactions WHERE user_id = ?`
	args := []any{userID}
	if interactionType != "" {
		query += ` AND interaction_type = ?`
		args = append(args, string(interactionType))
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)
	return db.queryInteractions(ctx, "by_user", limit, query, args...)
}

// InteractionsBySession returns the session's interactions most-recent-first.
func (db *DB) InteractionsBySession(ctx context.Context, sessionID string, limit int) ([]models.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM product_interactions
		WHERE session_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`
	return db.queryInteractions(ctx, "by_session", limit, query, sessionID, limit)
}

// InteractionsByProduct returns interactions on a product most-recent-first.
// An empty interactionType matches every type.
func (db *DB) InteractionsByProduct(ctx context.Context, productID int64, interactionType models.InteractionType, limit int) ([]models.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM product_interactions WHERE product_id = ?`
	args := []any{productID}
	if interactionType != "" {
		query += ` AND interaction_type = ?`
		args = append(args, string(interactionType))
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)
	return db.queryInteractions(ctx, "by_product", limit, query, args...)
}

func (db *DB) queryInteractions(ctx context.Context, operation string, limit int, query string, args ...any) (out []models.Interaction, err error) {
	out = make([]models.Interaction, 0)
	if limit <= 0 {
		return out, nil
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe(operation, "product_interactions", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions %s: %w", operation, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			in        models.Interaction
			typ       string
			userID    sql.NullInt64
			sessionID sql.NullString
			userAgent sql.NullString
			ipAddress sql.NullString
		)
		if err := rows.Scan(&in.ID, &userID, &in.ProductID, &typ, &sessionID, &in.Timestamp, &userAgent, &ipAddress); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.InteractionType = models.InteractionType(typ)
		in.UserID = int64Ptr(userID)
		in.SessionID = stringPtr(sessionID)
		in.UserAgent = stringPtr(userAgent)
		in.IPAddress = stringPtr(ipAddress)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions %s: %w", operation, err)
	}
	return out, nil
}

// PopularProducts returns products by interaction count, highest first.
// Equal counts are ordered by product id.
func (db *DB) PopularProducts(ctx context.Context, limit int) (out []models.PopularProduct, err error) {
	out = make([]models.PopularProduct, 0)
	if limit <= 0 {
		return out, nil
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("popular", "product_interactions", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		SELECT product_id, COUNT(*) AS interaction_count
		FROM product_interactions
		GROUP BY product_id
		ORDER BY interaction_count DESC, product_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PopularProduct
		if err := rows.Scan(&p.ProductID, &p.InteractionCount); err != nil {
			return nil, fmt.Errorf("scan popular product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular products: %w", err)
	}
	return out, nil
}

// CoOccurringProducts returns the products most interacted with by the
// registered users who also interacted with productID. productID itself is
// never returned.
func (db *DB) CoOccurringProducts(ctx context.Context, productID int64, limit int) (out []int64, err error) {
	out = make([]int64, 0)
	if limit <= 0 {
		return out, nil
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("co_occurring", "product_interactions", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, `
		WITH viewers AS (
			SELECT DISTINCT user_id
			FROM product_interactions
			WHERE product_id = ? AND user_id IS NOT NULL
		)
		SELECT pi.product_id, COUNT(*) AS weight
		FROM product_interactions pi
		JOIN viewers v ON v.user_id = pi.user_id
		WHERE pi.product_id <> ?
		GROUP BY pi.product_id
		ORDER BY weight DESC, pi.product_id ASC
		LIMIT ?`, productID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("query co-occurring products for %d: %w", productID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     int64
			weight int64
		)
		if err := rows.Scan(&id, &weight); err != nil {
			return nil, fmt.Errorf("scan co-occurring product: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate co-occurring products: %w", err)
	}
	return out, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
