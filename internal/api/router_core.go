// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/authz"
)

// Router wires handlers, auth, authorization, and the Chi middleware stack
// into the HTTP surface.
type Router struct {
	handler       *Handler
	authMw        *auth.Middleware
	authzMw       *authz.Middleware
	chiMiddleware *ChiMiddleware
	staticDir     string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(handler *Handler, authMw *auth.Middleware, authzMw *authz.Middleware) *Router {
	var (
		corsOrigins       []string
		rateLimitReqs     = 100
		rateLimitWindow   = RateLimitAPI.Window
		rateLimitDisabled = false
		staticDir         string
	)
	if handler.config != nil {
		corsOrigins = handler.config.Security.CORSOrigins
		if handler.config.Security.RateLimitReqs > 0 {
			rateLimitReqs = handler.config.Security.RateLimitReqs
		}
		if handler.config.Security.RateLimitWindow > 0 {
			rateLimitWindow = handler.config.Security.RateLimitWindow
		}
		rateLimitDisabled = handler.config.Security.RateLimitDisabled
		staticDir = handler.config.Server.StaticDir
	}

	chiMw := NewChiMiddlewareFromSecurity(
		corsOrigins,
		rateLimitReqs,
		rateLimitWindow,
		rateLimitDisabled,
	)

	return &Router{
		handler:       handler,
		authMw:        authMw,
		authzMw:       authzMw,
		chiMiddleware: chiMw,
		staticDir:     staticDir,
	}
}

// serveStaticOrIndex serves the built practice UI, or index.html for SPA
// routes. With no static directory configured (API-only runs, go test) every
// unmatched path is a JSON 404.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	if router.staticDir == "" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
		return
	}

	path := r.URL.Path

	// Cache-Control by file type. Bundles are content-hashed so they cache
	// hard; HTML stays short-lived so UI updates reach the browser quickly.
	switch {
	case strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css"):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	case strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".svg") ||
		strings.HasSuffix(path, ".jpg") || strings.HasSuffix(path, ".webp") ||
		strings.HasSuffix(path, ".ico"):
		w.Header().Set("Cache-Control", "public, max-age=604800")
	case path == "/" || path == "/index.html" || path == "/manifest.json":
		w.Header().Set("Cache-Control", "public, max-age=300")
	}

	if path == "/" || path == "/index.html" {
		http.ServeFile(w, r, filepath.Join(router.staticDir, "index.html"))
		return
	}

	if router.fileExists(path) {
		http.FileServer(http.Dir(router.staticDir)).ServeHTTP(w, r)
		return
	}

	// SPA fallback: unknown routes get index.html so client-side routing
	// works on hard reloads.
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Set("Cache-Control", "public, max-age=300")
	}
	http.ServeFile(w, r, filepath.Join(router.staticDir, "index.html"))
}

// fileExists checks whether path names a regular file in the static dir.
func (router *Router) fileExists(path string) bool {
	f, err := http.Dir(router.staticDir).Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return !stat.IsDir()
}
