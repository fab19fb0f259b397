// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_RequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/products/1", nil, func(r *http.Request) {
		r.Header.Set("X-Request-ID", "req-123")
	})
	expectStatus(t, rec, http.StatusOK)

	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID header = %q, want req-123", got)
	}
	if env := decodeEnvelope(t, rec); env.Metadata.RequestID != "req-123" {
		t.Errorf("metadata request_id = %q, want req-123", env.Metadata.RequestID)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://shop.toyverse.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.toyverse.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q for unlisted origin", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, withRateLimit(2))

	for i := 0; i < 2; i++ {
		expectStatus(t, srv.do(t, http.MethodGet, "/api/v1/products", nil), http.StatusOK)
	}
	expectErrorCode(t, srv.do(t, http.MethodGet, "/api/v1/products", nil), http.StatusTooManyRequests, "RATE_LIMITED")
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	srv := newTestServer(t, withRateLimit(2))

	for i, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		rec := srv.do(t, http.MethodGet, "/api/v1/products", nil, withHeader("X-Forwarded-For", ip))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
	rec := srv.do(t, http.MethodGet, "/api/v1/products", nil, withHeader("X-Forwarded-For", "198.51.100.3"))
	expectErrorCode(t, rec, http.StatusTooManyRequests, "RATE_LIMITED")
}

func TestRouter_ForwardedForSessionFallback(t *testing.T) {
	tests := []struct {
		name    string
		opts    []serverOption
		session string
	}{
		{"untrusted peer keeps socket address", nil, "192.0.2.1"},
		{"trusted proxy forwards client address", []serverOption{withTrustedProxies("192.0.2.0/24")}, "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.opts...)
			rec := srv.do(t, http.MethodPost, "/api/v1/recommendations/track?product_id=3", nil,
				withHeader("X-Forwarded-For", "198.51.100.7"))
			expectStatus(t, rec, http.StatusOK)

			var resp trackResponse
			decodeData(t, decodeEnvelope(t, rec), &resp)
			if resp.Interaction.SessionID == nil || *resp.Interaction.SessionID != tt.session {
				t.Errorf("session_id = %v, want %q", resp.Interaction.SessionID, tt.session)
			}
			if resp.Interaction.IPAddress == nil || *resp.Interaction.IPAddress != tt.session {
				t.Errorf("ip_address = %v, want %q", resp.Interaction.IPAddress, tt.session)
			}
		})
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/v1/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAPISecurityHeaders_HSTS(t *testing.T) {
	h := APISecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS should not be set over plain HTTP")
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS should be set behind a TLS proxy")
	}
}
