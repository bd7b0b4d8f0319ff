// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/models"
)

type contextKey string

// ClaimsContextKey is where RequireAuth stores the validated claims.
const ClaimsContextKey contextKey = "claims"

// TokenCookieName is the HTTP-only session cookie set on login.
const TokenCookieName = "token"

// Middleware enforces authentication on API routes. In "none" mode every
// request passes through unauthenticated, which is how most browser-test
// suites run the server.
type Middleware struct {
	jwtManager *JWTManager
	mode       string
}

// NewMiddleware creates authentication middleware for the configured mode.
func NewMiddleware(jwtManager *JWTManager, mode string) *Middleware {
	return &Middleware{jwtManager: jwtManager, mode: mode}
}

// Enabled reports whether requests must carry credentials.
func (m *Middleware) Enabled() bool {
	return m.mode != "none"
}

// RequireAuth rejects requests without a valid session token. Claims are
// stored in the request context for handlers and the authorization layer.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token, err := TokenFromRequest(r)
		if err != nil {
			writeUnauthorized(w, "authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Str("path", r.URL.Path).Msg("Token validation failed")
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest extracts the session token from the Authorization header,
// the session cookie, or the token query parameter, in that order. The query
// parameter exists for browser WebSocket clients, which cannot set headers.
func TokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("missing token")
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil when
// the request was not authenticated (auth disabled, or an open route).
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// WithClaims stores claims in a context. Handlers under test use this to
// simulate an authenticated request without minting a token.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status:   "error",
		Error:    &models.APIError{Code: "UNAUTHORIZED", Message: message},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
