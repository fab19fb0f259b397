// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

var (
	// ErrInvalidMode is returned for a recommendation mode outside Modes.
	ErrInvalidMode = errors.New("invalid recommendation mode")

	// ErrInvalidInteractionType is returned by Track for an unknown interaction type.
	ErrInvalidInteractionType = errors.New("invalid interaction type")
)

// Mode selects which strategies a personalized request runs.
type Mode string

// Recommendation modes.
const (
	ModeAll      Mode = "all"
	ModeCategory Mode = "category"
	ModeViewed   Mode = "viewed"
	ModePopular  Mode = "popular"
)

// Modes lists every valid mode.
var Modes = []Mode{ModeAll, ModeCategory, ModeViewed, ModePopular}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeAll, ModeCategory, ModeViewed, ModePopular:
		return true
	}
	return false
}

func (m Mode) includesCategory() bool { return m == ModeAll || m == ModeCategory }
func (m Mode) includesViewed() bool   { return m == ModeAll || m == ModeViewed }
func (m Mode) includesPopular() bool  { return m == ModeAll || m == ModePopular }

// ParseMode normalizes s and validates it. An empty string means ModeAll.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAll, nil
	}
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Reason texts attached to recommended items.
const (
	ReasonPopular        = "Popular choice"
	ReasonHighlyRated    = "Highly rated"
	ReasonCollaborative  = "Users who viewed similar items also liked this"
	ReasonAlsoViewed     = "Customers also viewed"
	reasonSimilarFormat  = "Similar to %s items you viewed"
	reasonMoreOfCategory = "More %s items"
)

// Source identifies the strategy that produced an item. It is not serialized.
type Source string

// Item sources, used as the metrics reason label.
const (
	SourceCategory      Source = "category"
	SourceCollaborative Source = "collaborative"
	SourcePopular       Source = "popular"
	SourceHighlyRated   Source = "highly_rated"
	SourceSameCategory  Source = "same_category"
	SourceAlsoViewed    Source = "also_viewed"
)

// RecommendationItem is a product with the reason it was recommended. The
// product fields are flattened into the JSON object.
type RecommendationItem struct {
	models.Product
	Reason           string   `json:"reason"`
	Score            *float64 `json:"score,omitempty"`
	InteractionCount *int64   `json:"interaction_count,omitempty"`
	Source           Source   `json:"-"`
}

// Request describes a personalized recommendation request. UserID wins over
// SessionID when both are set.
type Request struct {
	UserID    *int64
	SessionID string
	Mode      Mode
	Limit     int
}

// TrackRequest describes one interaction to record.
type TrackRequest struct {
	UserID          *int64
	SessionID       *string
	ProductID       int64
	InteractionType models.InteractionType
	UserAgent       *string
	IPAddress       *string
}

// InteractionStore is the interaction log the engine reads and appends to.
// database.DB implements it.
type InteractionStore interface {
	RecordInteraction(ctx context.Context, in *models.Interaction) (*models.Interaction, error)
	InteractionsByUser(ctx context.Context, userID int64, interactionType models.InteractionType, limit int) ([]models.Interaction, error)
	InteractionsBySession(ctx context.Context, sessionID string, limit int) ([]models.Interaction, error)
	PopularProducts(ctx context.Context, limit int) ([]models.PopularProduct, error)
	CoOccurringProducts(ctx context.Context, productID int64, limit int) ([]int64, error)
}

// Catalog is the read-only product lookup. database.DB implements it.
type Catalog interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// InteractionPublisher receives every successfully recorded interaction.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, in *models.Interaction) error
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	FallbackCount int64 `json:"fallback_count"`
	TrackCount    int64 `json:"track_count"`
	ErrorCount    int64 `json:"error_count"`
}
