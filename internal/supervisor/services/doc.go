// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

// Package services wraps ToyVerse components as suture services.
//
//   - HTTPServerService: runs net/http.Server with graceful drain
//   - MaintenanceService: periodic DuckDB checkpoints and engine counter logs
//
// The event consumer (eventbus.Consumer) implements suture.Service itself
// and needs no wrapper.
package services
