// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package authz

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/models"
)

// Middleware enforces the role permission grid on API routes. It expects to
// run after auth.Middleware.RequireAuth, which puts the validated claims in
// the request context.
type Middleware struct {
	enforcer *Enforcer
	enabled  bool
}

// NewMiddleware creates authorization middleware. When enabled is false
// (AUTH_MODE=none) every check passes, so browser suites that run without
// credentials can exercise admin routes.
func NewMiddleware(enforcer *Enforcer, enabled bool) *Middleware {
	return &Middleware{enforcer: enforcer, enabled: enabled}
}

// Authorize gates a route group on one object/action pair from the
// permission grid.
func (m *Middleware) Authorize(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			role := models.RoleGuest
			if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
				role = claims.Role
			}

			allowed, err := m.enforcer.Enforce(role, object, action)
			if err != nil {
				logging.Error().Err(err).
					Str("role", role).
					Str("object", object).
					Str("action", action).
					Msg("Authorization check failed")
				writeForbidden(w, "authorization check failed")
				return
			}

			if !allowed {
				writeForbidden(w, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)

	resp := models.APIResponse{
		Status:   "error",
		Error:    &models.APIError{Code: "FORBIDDEN", Message: message},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode forbidden response")
	}
}
