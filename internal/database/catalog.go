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
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

const (
	maxProductPageSize     = 100
	defaultProductPageSize = 100
)

// productSelect reads a product with its review count. Append WHERE/ORDER clauses.
const productSelect = `
SELECT p.id, p.title, p.price, p.category, p.stock, p.rating, p.icon,
	p.description, p.detailed_description, p.images, p.created_at, p.updated_at,
	COALESCE(r.review_count, 0) AS review_count
FROM products p
LEFT JOIN (
	SELECT product_id, COUNT(*) AS review_count FROM reviews GROUP BY product_id
) r ON r.product_id = p.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p      models.Product
		images string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Category, &p.Stock, &p.Rating, &p.Icon,
		&p.Description, &p.DetailedDescription, &images, &p.CreatedAt, &p.UpdatedAt,
		&p.ReviewCount); err != nil {
		return nil, err
	}
	if images != "" {
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return nil, fmt.Errorf("decode images for product %d: %w", p.ID, err)
		}
	}
	p.Finalize()
	return &p, nil
}

func (db *DB) queryProducts(ctx context.Context, operation, query string, args ...any) (products []models.Product, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe(operation, "products", start, err) }(time.Now())

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", operation, err)
	}
	defer rows.Close()

	products = make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", operation, err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", operation, err)
	}
	return products, nil
}

// GetProductByID returns the product or nil, nil when it does not exist.
func (db *DB) GetProductByID(ctx context.Context, id int64) (product *models.Product, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("get_by_id", "products", start, err) }(time.Now())

	p, err := scanProduct(db.conn.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}
	return p, nil
}

// GetProductsByCategory returns every product in category ordered by id.
func (db *DB) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return db.queryProducts(ctx, "get_by_category", productSelect+` WHERE p.category = ? ORDER BY p.id`, category)
}

// GetAllProducts returns the whole catalog ordered by id.
func (db *DB) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return db.queryProducts(ctx, "get_all", productSelect+` ORDER BY p.id`)
}

// ListProducts returns a filtered page of the catalog ordered by id.
func (db *DB) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	where, args := buildProductFilter(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProductPageSize
	}
	if limit > maxProductPageSize {
		limit = maxProductPageSize
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	query := productSelect + where + ` ORDER BY p.id LIMIT ? OFFSET ?`
	args = append(args, limit, skip)
	return db.queryProducts(ctx, "list", query, args...)
}

// buildProductFilter renders the WHERE clause for filter with positional args.
func buildProductFilter(filter models.ProductFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Category != "" {
		clauses = append(clauses, "p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "p.price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		clauses = append(clauses, "p.rating >= ?")
		args = append(args, *filter.MinRating)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			clauses = append(clauses, "p.stock > 0")
		} else {
			clauses = append(clauses, "p.stock <= 0")
		}
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		clauses = append(clauses, "(contains(lower(p.title), ?) OR contains(lower(p.description), ?))")
		args = append(args, search, search)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CreateProduct inserts p and fills its id, timestamps and derived fields.
func (db *DB) CreateProduct(ctx context.Context, p *models.Product) (err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "products", start, err) }(time.Now())

	if p.Images == nil {
		p.Images = []string{}
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	now := db.now()
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO products (title, price, category, stock, rating, icon, description,
			detailed_description, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.Title, p.Price, p.Category, p.Stock, p.Rating, p.Icon, p.Description,
		p.DetailedDescription, string(images), now, now,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product %q: %w", p.Title, err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now
	p.ReviewCount = 0
	p.Finalize()
	return nil
}

// CountProducts returns the number of catalog entries.
func (db *DB) CountProducts(ctx context.Context) (count int, err error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("count", "products", start, err) }(time.Now())

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
