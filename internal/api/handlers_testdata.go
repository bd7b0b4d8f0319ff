// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/eventbus"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// This file contains the test-data lifecycle endpoints. Automation suites
// call them between tests to return the server to a known baseline, so the
// paths are part of the public contract and stay unversioned:
//
//	POST /api/test-data/reset
//	POST /api/test-data/seed/users
//	POST /api/test-data/seed/products
//	POST /api/test-data/seed/notifications
//
// Reset clears; seed restores. The split matters: a registration suite wants
// an empty account table and calls reset alone, while a login suite follows
// reset with seed/users to get the default accounts back.

// defaultSeedNotificationCount is used when seed/notifications receives no
// body or a zero count.
const defaultSeedNotificationCount = 10

// requireTestData checks the TestData.Enabled switch and returns true when
// the lifecycle endpoints are available, false if the 404 was already sent.
// Disabled endpoints answer with a plain NOT_FOUND so a misconfigured
// harness fails the same way as a typo in the URL.
func (h *Handler) requireTestData(w http.ResponseWriter) bool {
	if h.config != nil && !h.config.TestData.Enabled {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Not found", ErrTestDataDisabled)
		return false
	}
	return true
}

// ResetTestData returns every dataset to its baseline state
//
// @Summary Reset all test data
// @Description Clears notifications, users, and uploaded files, restores the default product catalog, and resets feed sequence counters. Users are NOT reseeded; call seed/users afterwards when the default accounts are needed.
// @Tags TestData
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ResetResponse} "Per-dataset counts"
// @Failure 404 {object} models.APIResponse "Test data endpoints disabled"
// @Failure 500 {object} models.APIResponse "Reset failed"
// @Router /api/test-data/reset [post]
func (h *Handler) ResetTestData(w http.ResponseWriter, r *http.Request) {
	if !h.requireTestData(w) {
		return
	}

	// The file store is the only dataset whose reset can fail (it drops a
	// Badger keyspace). Run it first so an error leaves the other datasets
	// untouched instead of half-reset.
	filesCleared, err := h.store.Files.Reset()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to reset file store")
		respondError(w, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset uploaded files", err)
		return
	}

	counts := models.ResetResponse{
		NotificationsCleared: h.store.Notifications.Clear(),
		UsersCleared:         h.store.Users.Reset(),
		FilesCleared:         filesCleared,
		ProductsRestored:     h.store.Products.Reset(),
	}

	if h.feed != nil {
		h.feed.ResetSequences()
	}

	metrics.RecordTestDataReset()

	event, evErr := eventbus.NewTestDataReset(counts)
	h.publish(r.Context(), event, evErr)

	logging.Info().
		Int("notifications_cleared", counts.NotificationsCleared).
		Int("users_cleared", counts.UsersCleared).
		Int("files_cleared", counts.FilesCleared).
		Int("products_restored", counts.ProductsRestored).
		Msg("Test data reset")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   counts,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// SeedUsers restores the default user accounts
//
// @Summary Seed default users
// @Description Replaces all accounts with the six deterministic defaults (admin plus test1 through test5). Idempotent: seeding twice yields the same set.
// @Tags TestData
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SeedResponse} "Seeded dataset and count"
// @Failure 404 {object} models.APIResponse "Test data endpoints disabled"
// @Failure 500 {object} models.APIResponse "Seeding failed"
// @Router /api/test-data/seed/users [post]
func (h *Handler) SeedUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireTestData(w) {
		return
	}

	if err := h.store.Users.Seed(); err != nil {
		logging.Error().Err(err).Msg("Failed to seed users")
		respondError(w, http.StatusInternalServerError, "SEED_FAILED", "Failed to seed default users", err)
		return
	}

	h.respondSeeded(w, r, "users", h.store.Users.Count())
}

// SeedProducts restores the default product catalog
//
// @Summary Seed default products
// @Description Replaces the catalog with the deterministic default products. Idempotent.
// @Tags TestData
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.SeedResponse} "Seeded dataset and count"
// @Failure 404 {object} models.APIResponse "Test data endpoints disabled"
// @Router /api/test-data/seed/products [post]
func (h *Handler) SeedProducts(w http.ResponseWriter, r *http.Request) {
	if !h.requireTestData(w) {
		return
	}

	h.store.Products.Seed()
	h.respondSeeded(w, r, "products", h.store.Products.Count())
}

// SeedNotifications bulk-loads sample notifications
//
// @Summary Seed sample notifications
// @Description Loads N generated notifications into the store without broadcasting per-item events; a single test_data_seeded event announces the bulk load. Use it to fill list views before pagination or filter exercises.
// @Tags TestData
// @Accept json
// @Produce json
// @Param request body SeedNotificationsRequestValidation false "Seed options"
// @Success 200 {object} models.APIResponse{data=models.SeedResponse} "Seeded dataset and count"
// @Failure 400 {object} models.APIResponse "Invalid count"
// @Failure 404 {object} models.APIResponse "Test data endpoints disabled"
// @Router /api/test-data/seed/notifications [post]
func (h *Handler) SeedNotifications(w http.ResponseWriter, r *http.Request) {
	if !h.requireTestData(w) {
		return
	}

	// The body is optional: an absent body or zero count means the default.
	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}
	if body.Count == 0 {
		body.Count = defaultSeedNotificationCount
	}

	req := SeedNotificationsRequestValidation{Count: body.Count}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	created := h.store.Notifications.SeedSamples(req.Count)
	h.respondSeeded(w, r, "notifications", len(created))
}

// respondSeeded records the seed, publishes the aggregate event, and writes
// the SeedResponse. Bulk loads never broadcast per-item notification_created
// events; the single test_data_seeded event is the only thing WebSocket
// clients see.
func (h *Handler) respondSeeded(w http.ResponseWriter, r *http.Request, dataset string, count int) {
	metrics.RecordTestDataSeed(dataset)

	event, err := eventbus.NewTestDataSeeded(dataset, count)
	h.publish(r.Context(), event, err)

	logging.Info().
		Str("dataset", dataset).
		Int("count", count).
		Msg("Test data seeded")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.SeedResponse{
			Dataset: dataset,
			Count:   count,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
