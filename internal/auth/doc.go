// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package auth validates bearer tokens and exposes the caller's identity to
HTTP handlers.

Tokens are HS256 JWTs issued by the ToyVerse account service. The subject
claim carries the numeric user id and the role claim is "customer" or
"admin". This package only mints tokens for tests and operator tooling.

# Middleware

  - OptionalAuth: attaches claims when a valid bearer token is present.
    Missing or invalid tokens leave the request anonymous, so shoppers who
    are not signed in still get session-based recommendations.
  - RequireUser: rejects requests without a valid token (401).
  - RequireRole: rejects requests whose role does not match (403).

With auth mode "none" every request is anonymous and RequireRole lets all
requests through. RequireUser still rejects, since handlers behind it need
a user id.

# Usage

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	mw := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)

	r.With(mw.OptionalAuth).Get("/recommendations", h.Recommendations)
	r.With(mw.RequireUser).Post("/reviews", h.CreateReview)
	r.With(mw.RequireUser, mw.RequireRole(auth.RoleAdmin)).Post("/products", h.CreateProduct)

	if uid := auth.UserIDFromContext(r.Context()); uid != nil {
	    // signed-in shopper
	}
*/
package auth
