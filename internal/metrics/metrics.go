// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toyverse_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toyverse_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toyverse_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_recommendations_served_total",
			Help: "Recommendation lists served, by mode",
		},
		[]string{"mode"},
	)

	RecommendationItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_recommendation_items_total",
			Help: "Recommended items returned, by reason kind",
		},
		[]string{"reason"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toyverse_recommendation_duration_seconds",
			Help:    "Time spent building a recommendation list",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// Interaction Metrics
	InteractionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_interactions_tracked_total",
			Help: "Interactions recorded through the tracking endpoint",
		},
		[]string{"interaction_type"},
	)

	InteractionsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_interactions_consumed_total",
			Help: "Interaction events received from the event bus",
		},
		[]string{"interaction_type"},
	)

	// Catalog Cache Metrics
	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toyverse_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toyverse_events_published_total",
			Help: "Interaction events published to the event bus",
		},
	)

	EventPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toyverse_event_publish_errors_total",
			Help: "Interaction events that failed to publish",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "toyverse_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "toyverse_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one served recommendation list. reasons holds
// the reason kind of every returned item.
func RecordRecommendation(mode string, duration time.Duration, reasons []string) {
	RecommendationsServed.WithLabelValues(mode).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	for _, reason := range reasons {
		RecommendationItems.WithLabelValues(reason).Inc()
	}
}

// RecordInteractionTracked counts a recorded interaction.
func RecordInteractionTracked(interactionType string) {
	InteractionsTracked.WithLabelValues(interactionType).Inc()
}

// RecordInteractionConsumed counts an interaction event seen by the bus consumer.
func RecordInteractionConsumed(interactionType string) {
	InteractionsConsumed.WithLabelValues(interactionType).Inc()
}

// RecordCatalogCacheLookup counts a catalog cache hit or miss.
func RecordCatalogCacheLookup(hit bool) {
	if hit {
		CatalogCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CatalogCacheLookups.WithLabelValues("miss").Inc()
}

// RecordEventPublish counts a publish attempt outcome.
func RecordEventPublish(err error) {
	if err != nil {
		EventPublishErrors.Inc()
		return
	}
	EventsPublished.Inc()
}

// SetCircuitBreakerState records the numeric breaker state for name.
func SetCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}
