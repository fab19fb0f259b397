// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/cache"
	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/database"
	"github.com/Armaghan195/ToyVerse/internal/models"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
)

const testJWTSecret = "api-test-secret-key-that-is-at-least-32-characters"

// testDBSemaphore serializes DuckDB access across tests in this package.
var testDBSemaphore = make(chan struct{}, 1)

type testServer struct {
	handler http.Handler
	db      *database.DB
	jwt     *auth.JWTManager
}

type serverOption func(*config.Config)

func withCatalogCache() serverOption {
	return func(c *config.Config) {
		c.Recommend.CatalogCacheTTL = time.Hour
		c.Recommend.CatalogCacheSize = 64
	}
}

func withRateLimit(reqs int) serverOption {
	return func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = reqs
		c.Security.RateLimitWindow = time.Minute
	}
}

func withTrustedProxies(proxies ...string) serverOption {
	return func(c *config.Config) {
		c.Security.TrustedProxies = proxies
	}
}

// newTestServer builds the full router over a seeded in-memory DuckDB with
// JWT auth enabled.
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB", SeedCatalog: true},
		Security: config.SecurityConfig{
			AuthMode:          auth.AuthModeJWT,
			JWTSecret:         testJWTSecret,
			SessionTimeout:    time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"https://shop.toyverse.example"},
		},
		Recommend: config.RecommendConfig{DefaultLimit: 6, ProductDefaultLimit: 4, MaxLimit: 50},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	var catalog recommend.Catalog = db
	var catalogCache *cache.Catalog
	if cfg.Recommend.CatalogCacheTTL > 0 {
		catalogCache = cache.NewCatalog(db, cfg.Recommend.CatalogCacheSize, cfg.Recommend.CatalogCacheTTL)
		catalog = catalogCache
	}

	engine, err := recommend.NewEngine(nil, db, catalog, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	handler := NewHandler(db, engine, cfg, "test")
	if catalogCache != nil {
		handler.SetCatalogInvalidator(catalogCache)
	}
	router := NewRouter(handler, auth.NewMiddleware(jwtManager, cfg.Security.AuthMode), &cfg.Security)

	return &testServer{handler: router.SetupChi(), db: db, jwt: jwtManager}
}

func (s *testServer) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(userID, "tester", role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withHeader(key, value string) requestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func withSession(id string) requestOption {
	return func(r *http.Request) { r.Header.Set(SessionIDHeader, id) }
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// apiEnvelope mirrors models.APIResponse with raw data for typed decoding.
type apiEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, env apiEnvelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %q: %v", env.Data, err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
}
