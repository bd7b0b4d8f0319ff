// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/palaestra/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns overall health including auth mode, feed state, connected WebSocket clients, per-dataset record counts, and uptime
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	feedRunning := h.feed != nil && h.feed.IsRunning()
	feedEnabled := h.config != nil && h.config.Feed.Enabled

	clients := 0
	if h.hub != nil {
		clients = h.hub.GetClientCount()
	}

	// Degraded when the broadcast path is impaired: no hub, an open
	// publisher breaker, or a feed that should be running but is not.
	// The REST surface itself keeps working either way.
	status := "healthy"
	if h.hub == nil {
		status = "degraded"
	} else if h.publisher != nil && h.publisher.State() == "open" {
		status = "degraded"
	} else if feedEnabled && !feedRunning {
		status = "degraded"
	}

	authMode := "none"
	if h.config != nil {
		authMode = h.config.Security.AuthMode
	}

	health := models.HealthStatus{
		Status:      status,
		Version:     "1.0.0",
		AuthMode:    authMode,
		FeedRunning: feedRunning,
		WSClients:   clients,
		DatasetCounts: map[string]int{
			"notifications": h.store.Notifications.Len(),
			"users":         h.store.Users.Count(),
			"products":      h.store.Products.Count(),
			"files":         h.store.Files.Count(),
		},
		Uptime: time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of internal component state. Used for Kubernetes liveness probes.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service is ready to handle traffic
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only if the WebSocket hub is wired and the feed is running when enabled. Returns 503 if not ready.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	hubReady := h.hub != nil
	feedRunning := h.feed != nil && h.feed.IsRunning()
	feedEnabled := h.config != nil && h.config.Feed.Enabled
	ready := hubReady && (!feedEnabled || feedRunning)

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"hub_ready":      hubReady,
			"feed_running":   feedRunning,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
