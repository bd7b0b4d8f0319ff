// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/palaestra/docs" // Import generated swagger docs
	"github.com/tomtom215/palaestra/internal/api"
	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/authz"
	"github.com/tomtom215/palaestra/internal/config"
	"github.com/tomtom215/palaestra/internal/eventbus"
	"github.com/tomtom215/palaestra/internal/feed"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/store"
	"github.com/tomtom215/palaestra/internal/supervisor"
	"github.com/tomtom215/palaestra/internal/supervisor/services"
	ws "github.com/tomtom215/palaestra/internal/websocket"
)

// version is reported by /health and the Prometheus app info gauge.
const version = "1.0.0"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Palaestra with supervisor tree")

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("feed_enabled", cfg.Feed.Enabled).
		Bool("testdata_enabled", cfg.TestData.Enabled).
		Msg("Configuration loaded")

	// Initialize datasets. This seeds the default accounts and the product
	// catalog, so the server answers practice traffic immediately.
	st, err := store.New(cfg.Store, cfg.Security.BcryptCost)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize datasets")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Datasets initialized successfully")

	metrics.SetAppInfo(version)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Event bus connects store mutations and feed samples to the WebSocket
	// bridge. The publisher wraps it in a circuit breaker so a wedged bus
	// cannot stall request handlers.
	wmLogger := eventbus.NewLoggerAdapter()
	bus := eventbus.NewBus(eventbus.DefaultBusConfig(), wmLogger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	publisher := eventbus.NewPublisher(bus, wmLogger)

	// Create WebSocket hub for real-time updates (before the bridge, which
	// broadcasts through it)
	wsHub := ws.NewHub()

	bridge, err := eventbus.NewBridge(bus, wsHub, wmLogger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event bridge")
	}

	// Feed generator. Left nil when disabled; the feed endpoints answer 503
	// and /health/ready does not gate on it.
	var gen *feed.Generator
	if cfg.Feed.Enabled {
		gen = feed.NewGenerator(cfg.Feed, publisher)
		logging.Info().
			Dur("interval", cfg.Feed.Interval).
			Int64("seed", cfg.Feed.Seed).
			Msg("Live feed enabled")
	} else {
		logging.Info().Msg("Live feed disabled (FEED_ENABLED=false)")
	}

	// JWT manager is created in every auth mode: login issues tokens even
	// when AUTH_MODE=none so client flows behave identically; the middleware
	// just stops requiring them.
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	switch cfg.Security.AuthMode {
	case "jwt":
		logging.Info().Msg("JWT authentication enabled")
	case "none":
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  All endpoints are publicly accessible. This is the intended")
		logging.Warn().Msg("  mode for local automation practice, but NEVER expose this")
		logging.Warn().Msg("  server to a public network.")
		logging.Warn().Msg("============================================================")
	}

	authMw := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)

	// Casbin enforcer for role checks. Only enforced in jwt mode; with auth
	// off every role check passes so scripted flows never hit a 403.
	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization enforcer")
	}
	authzMw := authz.NewMiddleware(enforcer, cfg.Security.AuthEnabled())

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for load-test runs!")
	}

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  CORS is configured with a wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  Any website can make credentialed cross-origin requests to")
		logging.Warn().Msg("  this API. Set explicit origins outside local practice rigs:")
		logging.Warn().Msg("    CORS_ORIGINS=http://localhost:5173")
		logging.Warn().Msg("============================================================")
	}

	if !cfg.TestData.Enabled {
		logging.Info().Msg("Test-data endpoints disabled (TEST_ENDPOINTS_ENABLED=false)")
	}

	handler := api.NewHandler(st, publisher, wsHub, gen, cfg, jwtManager)
	router := api.NewRouter(handler, authMw, authzMw)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer: the upload janitor only earns its keep when uploads expire
	if cfg.Store.UploadTTL > 0 {
		tree.AddDataService(services.NewUploadJanitorService(st.Files, time.Minute))
		logging.Info().Dur("upload_ttl", cfg.Store.UploadTTL).Msg("Upload janitor added to supervisor tree")
	}

	// Messaging layer: hub first, then the bridge that feeds it
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewBridgeService(bridge))
	if gen != nil {
		tree.AddMessagingService(services.NewFeedService(gen))
	}
	logging.Info().Msg("WebSocket hub and event bridge added to supervisor tree")

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
