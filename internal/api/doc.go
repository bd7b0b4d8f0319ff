// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package api provides the HTTP REST API layer for Palaestra.

This package implements the endpoints the practice UI and its automation
suites exercise: notifications with real-time broadcast, the users and
products data-table datasets, file upload practice, live feed control, and
the test-data lifecycle that returns the server to a known baseline between
tests. It is the interface between the frontend single-page app (and the
Selenium/Playwright/Cypress suites driving it) and the backend services.

Key Components:

  - Router: HTTP route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: Standardized JSON responses with metadata
  - Error handling: Consistent error responses with appropriate HTTP status codes
  - Authentication integration: JWT auth via middleware, Casbin RBAC on admin routes
  - Rate limiting: Per-endpoint-class limits via go-chi/httprate
  - CORS: Cross-Origin Resource Sharing for the dev-server frontend

API Categories:

The API is organized into the following categories:

1. Core Endpoints:
  - Health checks (/health, /health/live, /health/ready)
  - Authentication (/api/v1/auth: login, register, logout, profile)

2. Practice Datasets (/api/v1/):
  - Notifications: CRUD plus read-state operations, every mutation broadcast
  - Users: paginated, filterable, sortable data-table dataset
  - Products: deterministic catalog for grid/filter/sort exercises
  - Files: multipart upload practice with size and capacity limits

3. Live Feed (/api/v1/feed/):
  - Channel metadata and latest-sample snapshots
  - Pause/resume controls for freezing the stream mid-test

4. Test-Data Lifecycle (/api/test-data/):
  - Reset to baseline and deterministic reseeding
  - Unversioned because the example automation suites call these exact paths

5. WebSocket Endpoint (/api/v1/ws):
  - Real-time notification events
  - Live feed samples
  - Test-data lifecycle announcements

Usage Example:

	import (
	    "github.com/tomtom215/palaestra/internal/api"
	    "github.com/tomtom215/palaestra/internal/auth"
	    "github.com/tomtom215/palaestra/internal/store"
	)

	// Create dependencies
	st := store.New(cfg)
	jwtManager, _ := auth.NewJWTManager(&cfg.Security)
	authMw := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)

	// Create handler and router
	handler := api.NewHandler(st, publisher, hub, gen, cfg, jwtManager)
	router := api.NewRouter(handler, authMw, authzMw)

	// Setup routes and start server
	http.ListenAndServe(":3001", router.SetupChi())

Determinism:

Automation suites depend on reproducible state, so the API never invents
data on the fly: seeded users, the product catalog, and bulk-loaded
notifications are identical on every run, and the reset endpoint returns
exact removal counts so a fixture can assert the baseline.

Thread Safety:

All handlers are thread-safe and designed for concurrent request handling.
Shared resources (dataset store, event bus, WebSocket hub) are protected by
their respective synchronization primitives.

Security:

  - JWT token validation on protected routes
  - Casbin role checks on admin-only operations
  - Per-class rate limiting (strictest on login)
  - Input validation via go-playground/validator request structs

See Also:

  - internal/auth: JWT issuing and authentication middleware
  - internal/authz: Casbin role enforcement
  - internal/store: In-memory dataset store
  - internal/eventbus: Event publishing toward the WebSocket hub
  - internal/models: Request/response data structures
*/
package api
