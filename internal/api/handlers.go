// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/config"
	"github.com/tomtom215/palaestra/internal/eventbus"
	"github.com/tomtom215/palaestra/internal/feed"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/store"
	ws "github.com/tomtom215/palaestra/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: Shared helper functions
//   - handlers_auth.go: Login, register, logout, profile
//   - handlers_notifications.go: Notification CRUD + broadcasts
//   - handlers_users.go: User data-table endpoints
//   - handlers_products.go: Product catalog endpoints
//   - handlers_files.go: Upload practice endpoints
//   - handlers_feed.go: Live feed control endpoints
//   - handlers_testdata.go: /api/test-data reset and seed endpoints
//   - handlers_health.go: Health/liveness/readiness endpoints
type Handler struct {
	store      *store.Store
	publisher  *eventbus.Publisher
	hub        *ws.Hub
	feed       *feed.Generator
	config     *config.Config
	jwtManager *auth.JWTManager
	startTime  time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - st: In-memory dataset store (notifications, users, products, files)
//   - publisher: Event bus publisher; every observable mutation goes through it
//   - hub: WebSocket hub for real-time broadcasts (nil disables /ws)
//   - gen: Live feed generator (nil disables /feed control endpoints)
//   - cfg: Application configuration
//   - jwtManager: JWT token manager for authentication
//
// Example:
//
//	handler := api.NewHandler(st, publisher, hub, gen, cfg, jwtManager)
//	router := api.NewRouter(handler, authMw, authzMw)
//	http.ListenAndServe(":3001", router.SetupChi())
func NewHandler(st *store.Store, publisher *eventbus.Publisher, hub *ws.Hub, gen *feed.Generator, cfg *config.Config, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		store:      st,
		publisher:  publisher,
		hub:        hub,
		feed:       gen,
		config:     cfg,
		jwtManager: jwtManager,
		startTime:  time.Now(),
	}
}

// publish sends an event through the bus publisher. Broadcast is best-effort
// by contract: a REST mutation succeeds even when the event cannot be
// published (breaker open, bus closed), so failures are logged and swallowed.
func (h *Handler) publish(ctx context.Context, event eventbus.Event, err error) {
	if err != nil {
		logging.Error().Err(err).Str("event_type", event.Type).Msg("Failed to build event")
		return
	}
	if h.publisher == nil {
		return
	}
	if pubErr := h.publisher.Publish(ctx, event); pubErr != nil {
		logging.Warn().
			Err(pubErr).
			Str("event_type", event.Type).
			Str("breaker_state", h.publisher.State()).
			Msg("Event publish failed; REST response unaffected")
	}
}

// WebSocket handles WebSocket upgrade requests on GET /api/v1/ws.
//
// @Summary Establish WebSocket connection
// @Description Establishes a WebSocket connection for real-time notification, feed, and test-data events
// @Tags Realtime
// @Accept json
// @Produce json
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {string} string "Origin not allowed"
// @Failure 503 {string} string "WebSocket hub not available"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	// Check if WebSocket hub is available
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", ErrHubNotAvailable)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with proper origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// If no origin header, REJECT - legitimate browser WebSockets ALWAYS include Origin
	// Only non-browser clients (curl, scripts, mobile apps) omit Origin header
	// Allowing empty Origin bypasses CORS entirely - security vulnerability
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (fail open for tests/development)
	if h.config == nil {
		return true
	}

	// Check against allowed origins from config
	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	// Origin not in allowed list - sanitize origin to prevent log injection
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
