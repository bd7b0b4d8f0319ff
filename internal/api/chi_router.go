// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// HTTP routing using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/palaestra/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows the HandlerFunc-shaped middleware (PrometheusMetrics) to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(E2EDebugLogging())           // Diagnostic logging (enabled via E2E_DEBUG=true)
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting (1000/min): monitoring and test harnesses
	// poll these freely
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Test-Data Lifecycle
	// ========================
	// Unversioned on purpose: these exact paths are baked into the example
	// automation suites that run against this server. They ride the health
	// rate class because conftest-style fixtures hit them before every test.
	r.Route("/api/test-data", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/reset", router.handler.ResetTestData)
		r.Post("/seed/users", router.handler.SeedUsers)
		r.Post("/seed/products", router.handler.SeedProducts)
		r.Post("/seed/notifications", router.handler.SeedNotifications)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Login and register share the strictest limit (5 per 5 minutes) so a
	// looping suite surfaces 429s instead of hiding a credential bug.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/register", router.handler.Register)
		r.Post("/logout", router.handler.Logout)
		// RequireAuth populates claims in jwt mode and passes through in
		// none mode; Profile resolves the token itself when claims are
		// absent, so a logged-in session works under either mode.
		r.With(router.authMw.RequireAuth).Get("/profile", router.handler.Profile)
	})

	// ========================
	// Notifications
	// ========================
	// The notification relay is the core practice surface and stays open:
	// badge counters, toasts, and WebSocket assertions must work without a
	// login step. Mutations carry the write rate class.
	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiPathValue) // Bridge Chi URL params to r.PathValue()

		r.Get("/", router.handler.ListNotifications)
		r.Get("/{id}", router.handler.GetNotification)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Post("/", router.handler.CreateNotification)
			r.Post("/read-all", router.handler.MarkAllNotificationsRead)
			r.Patch("/{id}/read", router.handler.MarkNotificationRead)
			r.Delete("/{id}", router.handler.DeleteNotification)
			r.Delete("/", router.handler.ClearNotifications)
		})
	})

	// ========================
	// Users (data-table dataset)
	// ========================
	// Reads need any authenticated account, writes need admin. Both checks
	// collapse to pass-through when AUTH_MODE=none.
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiPathValue)
		r.Use(router.authMw.RequireAuth)

		r.With(router.authzMw.Authorize("users", "read")).Get("/", router.handler.ListUsers)
		r.With(router.authzMw.Authorize("users", "read")).Get("/{id}", router.handler.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.With(router.authzMw.Authorize("users", "write")).Post("/", router.handler.CreateUser)
			r.With(router.authzMw.Authorize("users", "write")).Put("/{id}", router.handler.UpdateUser)
			r.With(router.authzMw.Authorize("users", "delete")).Delete("/{id}", router.handler.DeleteUser)
		})
	})

	// ========================
	// Products (catalog dataset)
	// ========================
	// Catalog reads are public (grid/filter/sort practice needs no login);
	// catalog management is admin only.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiPathValue)

		r.Get("/", router.handler.ListProducts)
		r.Get("/categories", router.handler.ProductCategories)
		r.Get("/{id}", router.handler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(router.authMw.RequireAuth)
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.With(router.authzMw.Authorize("products", "write")).Post("/", router.handler.CreateProduct)
			r.With(router.authzMw.Authorize("products", "write")).Put("/{id}", router.handler.UpdateProduct)
			r.With(router.authzMw.Authorize("products", "delete")).Delete("/{id}", router.handler.DeleteProduct)
		})
	})

	// ========================
	// Files (upload practice)
	// ========================
	r.Route("/api/v1/files", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiPathValue)

		r.Get("/", router.handler.ListFiles)
		r.Get("/{id}", router.handler.GetFile)
		r.Get("/{id}/content", router.handler.DownloadFile)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Post("/", router.handler.UploadFile)
			r.Delete("/{id}", router.handler.DeleteFile)
		})
	})

	// ========================
	// Live Feed
	// ========================
	// Channel metadata and snapshots are public; pause/resume change state
	// for every connected client, so they are admin controls.
	r.Route("/api/v1/feed", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/channels", router.handler.FeedChannels)
		r.Get("/snapshot", router.handler.FeedSnapshot)

		r.Group(func(r chi.Router) {
			r.Use(router.authMw.RequireAuth)
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.With(router.authzMw.Authorize("feed", "control")).Post("/pause", router.handler.FeedPause)
			r.With(router.authzMw.Authorize("feed", "control")).Post("/resume", router.handler.FeedResume)
		})
	})

	// ========================
	// WebSocket
	// ========================
	// Limits upgrade attempts, not message traffic.
	r.Route("/api/v1/ws", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWebSocket())
		r.Get("/", router.handler.WebSocket)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// ========================
	// Static Files & SPA
	// ========================
	// Must be last - catches all unmatched routes
	r.Get("/*", router.serveStaticOrIndex)

	return r
}

// chiPathValue middleware injects Chi URL params into the request so handlers
// using r.PathValue() continue to work. This bridges Chi's chi.URLParam()
// with Go 1.22+'s r.PathValue().
func chiPathValue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		if rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				if i < len(rctx.URLParams.Values) {
					r.SetPathValue(key, rctx.URLParams.Values[i])
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
