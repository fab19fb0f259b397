// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // Read/write timeout for HTTP requests
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Drain time on SIGINT/SIGTERM
	Environment     string        `koanf:"environment"`      // development, staging, production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path        string `koanf:"path"`
	MaxMemory   string `koanf:"max_memory"`
	Threads     int    `koanf:"threads"`      // 0 = use NumCPU
	SeedCatalog bool   `koanf:"seed_catalog"` // Insert the launch catalog when the products table is empty

	// CheckpointInterval is how often the maintenance service checkpoints
	// the DuckDB WAL. 0 disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// SecurityConfig holds authentication and HTTP hardening settings.
type SecurityConfig struct {
	// AuthMode is "jwt" (bearer tokens accepted, admin routes protected)
	// or "none" (every request is anonymous, admin routes open).
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine tuning.
type RecommendConfig struct {
	// HistoryLimit is how many recent interactions are read per identity.
	HistoryLimit int `koanf:"history_limit"`

	// CoOccurrenceFanout is how many co-occurring products are fetched per
	// touched product; the item at rank r contributes (fanout - r).
	CoOccurrenceFanout int `koanf:"co_occurrence_fanout"`

	// PopularCap bounds the popular list merged into mode=all results.
	PopularCap int `koanf:"popular_cap"`

	// TopCategories is how many of the caller's most frequent categories are used.
	TopCategories int `koanf:"top_categories"`

	// DefaultLimit is used by GET /recommendations when limit is omitted.
	DefaultLimit int `koanf:"default_limit"`

	// ProductDefaultLimit is used by GET /recommendations/product/{id}.
	ProductDefaultLimit int `koanf:"product_default_limit"`

	// MaxLimit is the largest limit accepted at the HTTP boundary.
	MaxLimit int `koanf:"max_limit"`

	// CatalogCacheTTL is how long catalog lookups are cached. 0 disables
	// the cache.
	CatalogCacheTTL time.Duration `koanf:"catalog_cache_ttl"`

	// CatalogCacheSize bounds the number of cached catalog lookups.
	CatalogCacheSize int `koanf:"catalog_cache_size"`
}

// EventsConfig holds the interaction event bus settings.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Topic   string `koanf:"topic"`

	// NATSURL selects the NATS transport when the binary is built with -tags nats.
	// Empty means the in-process channel transport.
	NATSURL string `koanf:"nats_url"`

	BufferSize int `koanf:"buffer_size"`

	BreakerMaxRequests      uint32        `koanf:"breaker_max_requests"`
	BreakerInterval         time.Duration `koanf:"breaker_interval"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
}

// Load reads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
