// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for request ID tracking and
Prometheus metrics integration. These components work alongside the
authentication middleware to create a complete middleware stack for HTTP
request processing. All middleware uses the func(http.HandlerFunc)
http.HandlerFunc form and is adapted into Chi's func(http.Handler)
http.Handler shape at the router.

Key Components:

  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/api/notifications",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    log.Printf("[%s] Processing request", requestID)
	}

Incoming X-Request-ID headers are preserved so a browser test harness can
correlate its own run IDs with server logs; requests without one get a fresh
UUID v4.

Usage Example - Prometheus Metrics:

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Get("/notifications/{id}", handler)
	})

Metrics are labeled with the Chi route pattern (/api/notifications/{id})
rather than the concrete URL path. Notification IDs are UUIDs, so labeling
by raw path would create a new time series per notification.

Performance Characteristics:

  - Metrics overhead: <0.1ms per request
  - Request ID overhead: <0.01ms (UUID generation)

Thread Safety:

All middleware components are thread-safe:
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/auth: Authentication middleware
  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
