// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil authMw disables authentication.
func NewRouter(handler *Handler, authMw *auth.Middleware, sec *config.SecurityConfig) *Router {
	if authMw == nil {
		authMw = auth.NewMiddleware(nil, auth.AuthModeNone)
	}
	return &Router{
		handler:       handler,
		auth:          authMw,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(sec)),
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(router.chiMiddleware.RealIP())
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.auth.OptionalAuth)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", router.handler.Recommendations)
			r.Get("/product/{id}", router.handler.ProductRecommendations)
			r.With(router.chiMiddleware.RateLimitTrack()).Post("/track", router.handler.TrackInteraction)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", router.handler.ListProducts)
			r.Get("/{id}", router.handler.GetProduct)
			r.With(
				router.chiMiddleware.RateLimitWrite(),
				router.auth.RequireRole(auth.RoleAdmin),
			).Post("/", router.handler.CreateProduct)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{product_id}", router.handler.ListReviews)
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite(), router.auth.RequireUser)
				r.Post("/", router.handler.CreateReview)
				r.Put("/{review_id}", router.handler.UpdateReview)
				r.Delete("/{review_id}", router.handler.DeleteReview)
			})
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(router.auth.RequireUser)
			r.Get("/", router.handler.GetWishlist)
			r.Get("/product-ids", router.handler.WishlistProductIDs)
			r.Get("/check/{product_id}", router.handler.CheckWishlist)
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Post("/add", router.handler.AddToWishlist)
				r.Delete("/remove/{product_id}", router.handler.RemoveFromWishlist)
				r.Delete("/clear", router.handler.ClearWishlist)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(router.auth.RequireUser)
			r.Get("/", router.handler.GetCart)
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Post("/add", router.handler.AddToCart)
				r.Delete("/clear", router.handler.ClearCart)
				r.Put("/{item_id}", router.handler.UpdateCartItem)
				r.Delete("/{item_id}", router.handler.RemoveCartItem)
			})
		})
	})

	return r
}
