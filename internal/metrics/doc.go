// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package metrics exposes the service's Prometheus instrumentation.

All collectors are registered with the default registry through promauto and
served by the /metrics route.

# Available Metrics

Database:
  - toyverse_db_query_duration_seconds{operation,table}
  - toyverse_db_query_errors_total{operation,table}

API:
  - toyverse_api_requests_total{method,endpoint,status_code}
  - toyverse_api_request_duration_seconds{method,endpoint}
  - toyverse_api_active_requests

Recommendations and interactions:
  - toyverse_recommendations_served_total{mode}
  - toyverse_recommendation_items_total{reason}
  - toyverse_recommendation_duration_seconds{mode}
  - toyverse_interactions_tracked_total{interaction_type}
  - toyverse_interactions_consumed_total{interaction_type}

Event bus:
  - toyverse_events_published_total
  - toyverse_event_publish_errors_total
  - toyverse_circuit_breaker_state{name}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "products", time.Since(start), err)
*/
package metrics
