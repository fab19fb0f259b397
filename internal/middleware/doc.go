// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware here uses the chi signature func(http.Handler) http.Handler.

  - RequestID: honors or generates X-Request-ID and seeds the logging context
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    chi route pattern so path parameters do not explode label cardinality

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/recommendations", h.Recommendations)
	})
*/
package middleware
