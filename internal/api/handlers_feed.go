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

// This file contains the live feed endpoints. The feed is the always-moving
// data source for real-time widget practice; pause/resume exist so a test
// can freeze the stream, assert on a stable DOM, and let it run again.

// feedState is the data payload of the pause/resume responses.
type feedState struct {
	Running bool `json:"running"`
	Paused  bool `json:"paused"`
}

// requireFeed checks feed availability and returns true if available,
// false if the error response was already sent.
func (h *Handler) requireFeed(w http.ResponseWriter) bool {
	if h.feed == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Live feed is not available", ErrFeedNotAvailable)
		return false
	}
	return true
}

// FeedChannels lists the configured feed channels
//
// @Summary List feed channels
// @Description Returns the synthetic data channels the feed emits, with units and value ranges
// @Tags Feed
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.FeedChannel} "Channel descriptors"
// @Failure 503 {object} models.APIResponse "Feed not available"
// @Router /feed/channels [get]
func (h *Handler) FeedChannels(w http.ResponseWriter, r *http.Request) {
	if !h.requireFeed(w) {
		return
	}

	channels := h.feed.Channels()
	if channels == nil {
		channels = []models.FeedChannel{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   channels,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// FeedSnapshot returns the latest sample per channel
//
// @Summary Get feed snapshot
// @Description Returns the most recent sample per channel, so a page can render current values without waiting for the next WebSocket tick
// @Tags Feed
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.FeedSample} "Latest samples"
// @Failure 503 {object} models.APIResponse "Feed not available"
// @Router /feed/snapshot [get]
func (h *Handler) FeedSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.requireFeed(w) {
		return
	}

	samples := h.feed.Snapshot()
	if samples == nil {
		samples = []models.FeedSample{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   samples,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// FeedPause freezes feed emission
//
// @Summary Pause the feed
// @Description Freezes sample emission without losing sequence numbers. Idempotent.
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Feed paused"
// @Failure 403 {object} models.APIResponse "Requires the admin role"
// @Failure 503 {object} models.APIResponse "Feed not available"
// @Router /feed/pause [post]
func (h *Handler) FeedPause(w http.ResponseWriter, r *http.Request) {
	if !h.requireFeed(w) {
		return
	}

	h.feed.Pause()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: feedState{
			Running: h.feed.IsRunning(),
			Paused:  h.feed.IsPaused(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// FeedResume resumes feed emission after a pause
//
// @Summary Resume the feed
// @Description Restarts sample emission after a pause; sequence numbers continue where they left off. Idempotent.
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Feed resumed"
// @Failure 403 {object} models.APIResponse "Requires the admin role"
// @Failure 503 {object} models.APIResponse "Feed not available"
// @Router /feed/resume [post]
func (h *Handler) FeedResume(w http.ResponseWriter, r *http.Request) {
	if !h.requireFeed(w) {
		return
	}

	h.feed.Resume()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: feedState{
			Running: h.feed.IsRunning(),
			Paused:  h.feed.IsPaused(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
