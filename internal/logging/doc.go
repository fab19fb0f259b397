// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

// Package logging provides the zerolog-based logging used across ToyVerse.
//
// A process-wide logger is configured once from main via Init and is used by
// the HTTP layer and startup code. Components with their own lifetime, such as
// the recommendation engine, receive a zerolog.Logger by injection and derive
// a component logger from it.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("server starting")
//
//	// Request-scoped logging picks up request_id and correlation_id.
//	logging.Ctx(ctx).Debug().Int64("product_id", id).Msg("tracking interaction")
//
// NewSlogLogger bridges to log/slog for libraries that only accept a
// *slog.Logger (sutureslog, watermill).
package logging
