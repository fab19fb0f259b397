// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package metrics

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns the sample count of a histogram series.
func histogramCount(t *testing.T, h prometheus.ObserverVec, labels ...string) uint64 {
	t.Helper()
	obs, err := h.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("get histogram: %v", err)
	}
	var m io_prometheus_client.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{"successful select", "select", "products", 10 * time.Millisecond, nil},
		{"successful insert", "insert", "product_interactions", 5 * time.Millisecond, nil},
		{"failed update", "update", "reviews", 100 * time.Millisecond, errors.New("connection refused")},
		{"fast aggregate", "aggregate", "product_interactions", 500 * time.Microsecond, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beforeErrs := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			beforeCount := histogramCount(t, DBQueryDuration, tt.operation, tt.table)

			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)

			if got := histogramCount(t, DBQueryDuration, tt.operation, tt.table); got != beforeCount+1 {
				t.Errorf("sample count = %d, want %d", got, beforeCount+1)
			}
			afterErrs := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			wantErrs := beforeErrs
			if tt.err != nil {
				wantErrs++
			}
			if afterErrs != wantErrs {
				t.Errorf("error counter = %v, want %v", afterErrs, wantErrs)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("requests total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	beforeServed := testutil.ToFloat64(RecommendationsServed.WithLabelValues("all"))
	beforePopular := testutil.ToFloat64(RecommendationItems.WithLabelValues("popular"))

	RecordRecommendation("all", time.Millisecond, []string{"popular", "popular", "category"})

	if got := testutil.ToFloat64(RecommendationsServed.WithLabelValues("all")); got != beforeServed+1 {
		t.Errorf("served = %v, want %v", got, beforeServed+1)
	}
	if got := testutil.ToFloat64(RecommendationItems.WithLabelValues("popular")); got != beforePopular+2 {
		t.Errorf("popular items = %v, want %v", got, beforePopular+2)
	}
}

func TestInteractionCounters(t *testing.T) {
	for i, typ := range []string{"view", "purchase"} {
		before := testutil.ToFloat64(InteractionsTracked.WithLabelValues(typ))
		RecordInteractionTracked(typ)
		RecordInteractionConsumed(typ)
		if got := testutil.ToFloat64(InteractionsTracked.WithLabelValues(typ)); got != before+1 {
			t.Errorf("case %s: tracked = %v, want %v", strconv.Itoa(i), got, before+1)
		}
		if got := testutil.ToFloat64(InteractionsConsumed.WithLabelValues(typ)); got < 1 {
			t.Errorf("case %s: consumed = %v, want >= 1", strconv.Itoa(i), got)
		}
	}
}

func TestRecordEventPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished)
	errBefore := testutil.ToFloat64(EventPublishErrors)

	RecordEventPublish(nil)
	RecordEventPublish(errors.New("breaker open"))

	if got := testutil.ToFloat64(EventsPublished); got != okBefore+1 {
		t.Errorf("published = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(EventPublishErrors); got != errBefore+1 {
		t.Errorf("publish errors = %v, want %v", got, errBefore+1)
	}
}

func TestRecordCatalogCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("miss"))

	RecordCatalogCacheLookup(true)
	RecordCatalogCacheLookup(false)
	RecordCatalogCacheLookup(false)

	if got := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("miss")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("interaction-events", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("interaction-events")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	SetCircuitBreakerState("interaction-events", 0)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("interaction-events")); got != 0 {
		t.Errorf("state = %v, want 0", got)
	}
}
