// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/models"
)

// Auth modes.
const (
	AuthModeJWT  = "jwt"
	AuthModeNone = "none"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errMalformed    = errors.New("authorization header must be 'Bearer <token>'")
)

// Middleware resolves bearer tokens into request claims.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates the authentication middleware. jwtManager may be nil
// when authMode is "none".
func NewMiddleware(jwtManager *JWTManager, authMode string) *Middleware {
	if authMode == "" {
		authMode = AuthModeJWT
	}
	return &Middleware{jwtManager: jwtManager, authMode: authMode}
}

// OptionalAuth attaches claims when the request carries a valid bearer
// token. Requests without one, or with an invalid one, continue anonymously.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == AuthModeNone || m.jwtManager == nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.authenticate(r)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring invalid bearer token on optional route")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequireUser rejects requests without a valid bearer token.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		if m.authMode == AuthModeNone || m.jwtManager == nil {
			writeAuthError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is disabled; this endpoint needs a signed-in user")
			return
		}

		claims, err := m.authenticate(r)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Authentication failed")
			writeAuthError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized: valid bearer token required")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequireRole rejects authenticated requests whose role differs from role.
// In auth mode "none" every request passes.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.authMode == AuthModeNone {
				next.ServeHTTP(w, r)
				return
			}
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeAuthError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized: valid bearer token required")
				return
			}
			if claims.Role != role {
				logging.Ctx(r.Context()).Warn().
					Str("required_role", role).
					Str("role", claims.Role).
					Str("subject", claims.Subject).
					Msg("Forbidden: role mismatch")
				writeAuthError(w, r, http.StatusForbidden, "FORBIDDEN", "Insufficient privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) authenticate(r *http.Request) (*Claims, error) {
	token, err := extractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return m.jwtManager.ValidateToken(token)
}

// extractBearerToken returns the token of an "Authorization: Bearer" header.
func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errMalformed
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMalformed
	}
	return token, nil
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &models.APIError{Code: code, Message: message},
	}
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="toyverse"`)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode auth error")
	}
}
