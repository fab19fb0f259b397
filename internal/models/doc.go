// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package models defines the data structures shared by the ToyVerse store,
recommendation engine and HTTP API.

  - Product: catalog record with derived review_count, is_in_stock and formatted_price
  - Interaction: one recorded user/session action against a product (append-only)
  - InteractionType: closed set of interaction kinds accepted by the service
  - Review: one customer rating of a product
  - APIResponse: standard response envelope
*/
package models
