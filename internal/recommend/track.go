// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package recommend

import (
	"context"
	"fmt"

	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

// Track validates and records one interaction, then hands it to the
// publisher if one is installed. Publish failures are logged only.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Track(ctx context.Context, req TrackRequest) (*models.Interaction, error) {
	if !req.InteractionType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInteractionType, req.InteractionType)
	}

	stored, err := e.store.RecordInteraction(ctx, &models.Interaction{
		UserID:          req.UserID,
		ProductID:       req.ProductID,
		InteractionType: req.InteractionType,
		SessionID:       req.SessionID,
		UserAgent:       req.UserAgent,
		IPAddress:       req.IPAddress,
	})
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("record interaction: %w", err)
	}

	e.trackCount.Add(1)
	metrics.RecordInteractionTracked(string(stored.InteractionType))

	if e.publisher != nil {
		if err := e.publisher.PublishInteraction(ctx, stored); err != nil {
			e.logger.Warn().
				Err(err).
				Int64("interaction_id", stored.ID).
				Str("interaction_type", string(stored.InteractionType)).
				Msg("failed to publish interaction event")
		}
	}
	return stored, nil
}
