// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package eventbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Armaghan195/ToyVerse/internal/models"
)

// SchemaVersion is the current InteractionEvent schema version.
const SchemaVersion = 1

// DefaultTopic is the topic interactions are published on.
const DefaultTopic = "interaction.tracked"

// InteractionEvent is the wire form of one tracked interaction.
type InteractionEvent struct {
	EventID         string    `json:"event_id"`
	SchemaVersion   int       `json:"schema_version"`
	InteractionID   int64     `json:"interaction_id"`
	ProductID       int64     `json:"product_id"`
	UserID          *int64    `json:"user_id,omitempty"`
	SessionID       *string   `json:"session_id,omitempty"`
	InteractionType string    `json:"interaction_type"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewInteractionEvent builds an event for a stored interaction.
func NewInteractionEvent(in *models.Interaction) *InteractionEvent {
	return &InteractionEvent{
		EventID:         uuid.New().String(),
		SchemaVersion:   SchemaVersion,
		InteractionID:   in.ID,
		ProductID:       in.ProductID,
		UserID:          in.UserID,
		SessionID:       in.SessionID,
		InteractionType: in.InteractionType.String(),
		Timestamp:       in.Timestamp.UTC(),
	}
}

// Validate checks the fields consumers rely on.
func (e *InteractionEvent) Validate() error {
	if e.EventID == "" {
		return errors.New("event_id is required")
	}
	if e.ProductID <= 0 {
		return fmt.Errorf("product_id must be positive, got %d", e.ProductID)
	}
	if !models.InteractionType(e.InteractionType).Valid() {
		return fmt.Errorf("unknown interaction_type %q", e.InteractionType)
	}
	return nil
}

// MarshalEvent validates and encodes an event.
func MarshalEvent(e *InteractionEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalEvent decodes and validates an event. Events without a schema
// version are treated as version 1.
func UnmarshalEvent(data []byte) (*InteractionEvent, error) {
	var e InteractionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.SchemaVersion == 0 {
		e.SchemaVersion = 1
	}
	if e.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema_version %d", e.SchemaVersion)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &e, nil
}
