// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Armaghan195/ToyVerse/internal/api"
	"github.com/Armaghan195/ToyVerse/internal/auth"
	"github.com/Armaghan195/ToyVerse/internal/cache"
	"github.com/Armaghan195/ToyVerse/internal/config"
	"github.com/Armaghan195/ToyVerse/internal/database"
	"github.com/Armaghan195/ToyVerse/internal/logging"
	"github.com/Armaghan195/ToyVerse/internal/metrics"
	"github.com/Armaghan195/ToyVerse/internal/recommend"
	"github.com/Armaghan195/ToyVerse/internal/supervisor"
	"github.com/Armaghan195/ToyVerse/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Starting ToyVerse with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	var jwtManager *auth.JWTManager
	switch cfg.Security.AuthMode {
	case auth.AuthModeJWT:
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		logging.Info().Msg("JWT authentication enabled")
	case auth.AuthModeNone:
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  Product creation is open to every caller.")
		logging.Warn().Msg("  Use this mode only for local development.")
		logging.Warn().Msg("============================================================")
	}
	authMiddleware := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with a wildcard origin while authentication is enabled; set CORS_ORIGINS in production")
	}

	var catalog recommend.Catalog = db
	var catalogCache *cache.Catalog
	if cfg.Recommend.CatalogCacheTTL > 0 {
		catalogCache = cache.NewCatalog(db, cfg.Recommend.CatalogCacheSize, cfg.Recommend.CatalogCacheTTL)
		catalog = catalogCache
		logging.Info().
			Dur("ttl", cfg.Recommend.CatalogCacheTTL).
			Int("size", cfg.Recommend.CatalogCacheSize).
			Msg("Catalog cache enabled")
	}

	engine, err := recommend.NewEngine(engineConfig(&cfg.Recommend), db, catalog, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	events, err := initEvents(&cfg.Events, engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer events.Close()

	handler := api.NewHandler(db, engine, cfg, version)
	handler.SetEventsBus(events.Name())
	if catalogCache != nil {
		handler.SetCatalogInvalidator(catalogCache)
	}
	router := api.NewRouter(handler, authMiddleware, &cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewMaintenanceService(db, engine, services.MaintenanceConfig{
		CheckpointInterval: cfg.Database.CheckpointInterval,
	}, logging.WithComponent("maintenance")))

	if consumer := events.Consumer(); consumer != nil {
		tree.AddMessagingService(consumer)
		logging.Info().Str("topic", cfg.Events.Topic).Msg("Event consumer added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// engineConfig maps the recommend section onto engine tuning. Zero values
// keep the engine defaults.
func engineConfig(rc *config.RecommendConfig) *recommend.Config {
	ec := recommend.DefaultConfig()
	if rc.HistoryLimit > 0 {
		ec.HistoryLimit = rc.HistoryLimit
	}
	if rc.CoOccurrenceFanout > 0 {
		ec.CoOccurrenceFanout = rc.CoOccurrenceFanout
	}
	if rc.PopularCap > 0 {
		ec.PopularCap = rc.PopularCap
	}
	if rc.TopCategories > 0 {
		ec.TopCategories = rc.TopCategories
	}
	if rc.DefaultLimit > 0 {
		ec.DefaultLimit = rc.DefaultLimit
	}
	if rc.ProductDefaultLimit > 0 {
		ec.ProductDefaultLimit = rc.ProductDefaultLimit
	}
	return ec
}
