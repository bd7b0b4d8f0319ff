// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/palaestra/internal/models"
)

// TestResetTestData tests the full reset across populated datasets
func TestResetTestData(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	seedNotification(handler, "info", "stale", "", "")
	seedNotification(handler, "error", "stale too", "", "")
	uploadFile(t, handler, "leftover.txt", "text/plain", []byte("x"))
	handler.store.Products.Create(models.CreateProductRequest{Name: "Extra", Category: "home"})

	req := httptest.NewRequest(http.MethodPost, "/api/test-data/reset", nil)
	w := httptest.NewRecorder()

	handler.ResetTestData(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	data := dataMap(t, decodeResponse(t, w))
	if data["notifications_cleared"] != float64(2) {
		t.Errorf("Expected notifications_cleared 2, got %v", data["notifications_cleared"])
	}
	if data["users_cleared"] != float64(6) {
		t.Errorf("Expected users_cleared 6, got %v", data["users_cleared"])
	}
	if data["files_cleared"] != float64(1) {
		t.Errorf("Expected files_cleared 1, got %v", data["files_cleared"])
	}
	if data["products_restored"] != float64(30) {
		t.Errorf("Expected products_restored 30, got %v", data["products_restored"])
	}

	// Reset empties accounts and uploads but restores the product catalog.
	if handler.store.Notifications.Len() != 0 {
		t.Error("Expected empty notification store")
	}
	if handler.store.Users.Count() != 0 {
		t.Error("Reset must not reseed accounts")
	}
	if handler.store.Files.Count() != 0 {
		t.Error("Expected empty file store")
	}
	if handler.store.Products.Count() != 30 {
		t.Errorf("Expected 30 catalog products, got %d", handler.store.Products.Count())
	}
}

// TestResetTestData_Repeat tests that a second reset reports empty datasets
func TestResetTestData_Repeat(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ResetTestData(w, httptest.NewRequest(http.MethodPost, "/api/test-data/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ResetTestData(w, httptest.NewRequest(http.MethodPost, "/api/test-data/reset", nil))

	data := dataMap(t, decodeResponse(t, w))
	if data["users_cleared"] != float64(0) {
		t.Errorf("Expected users_cleared 0 on repeat, got %v", data["users_cleared"])
	}
	if data["notifications_cleared"] != float64(0) {
		t.Errorf("Expected notifications_cleared 0 on repeat, got %v", data["notifications_cleared"])
	}
	// The catalog is always restored in full.
	if data["products_restored"] != float64(30) {
		t.Errorf("Expected products_restored 30, got %v", data["products_restored"])
	}
}

// TestTestData_Disabled tests that disabled lifecycle endpoints 404
func TestTestData_Disabled(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	cfg.TestData.Enabled = false
	handler := newTestHandlerWithConfig(t, cfg)

	endpoints := []struct {
		name string
		call func(http.ResponseWriter, *http.Request)
	}{
		{"reset", handler.ResetTestData},
		{"seed users", handler.SeedUsers},
		{"seed products", handler.SeedProducts},
		{"seed notifications", handler.SeedNotifications},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/test-data/reset", nil)
			w := httptest.NewRecorder()

			ep.call(w, req)

			if w.Code != http.StatusNotFound {
				t.Fatalf("Expected status 404, got %d", w.Code)
			}

			resp := decodeResponse(t, w)
			if code := errorCode(t, resp); code != "NOT_FOUND" {
				t.Errorf("Expected NOT_FOUND, got %s", code)
			}
			// Disabled endpoints are indistinguishable from missing routes.
			if resp.Error.Message != "Not found" {
				t.Errorf("Unexpected message %q", resp.Error.Message)
			}
		})
	}
}

// TestSeedUsers tests restoring the default accounts after a reset
func TestSeedUsers(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ResetTestData(w, httptest.NewRequest(http.MethodPost, "/api/test-data/reset", nil))
	if handler.store.Users.Count() != 0 {
		t.Fatal("Expected no accounts after reset")
	}

	w = httptest.NewRecorder()
	handler.SeedUsers(w, httptest.NewRequest(http.MethodPost, "/api/test-data/seed/users", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	data := dataMap(t, decodeResponse(t, w))
	if data["dataset"] != "users" {
		t.Errorf("Expected dataset 'users', got %v", data["dataset"])
	}
	if data["count"] != float64(6) {
		t.Errorf("Expected count 6, got %v", data["count"])
	}

	// The seeded admin must be able to log in again.
	if _, err := handler.store.Users.Authenticate("admin@example.com", "admin123"); err != nil {
		t.Errorf("Seeded admin cannot authenticate: %v", err)
	}
}

// TestSeedProducts tests catalog restoration
func TestSeedProducts(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)
	products, _ := handler.store.Products.List(models.ProductFilter{Page: 1, Limit: 5})
	for _, p := range products {
		if err := handler.store.Products.Delete(p.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	}

	w := httptest.NewRecorder()
	handler.SeedProducts(w, httptest.NewRequest(http.MethodPost, "/api/test-data/seed/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	data := dataMap(t, decodeResponse(t, w))
	if data["dataset"] != "products" {
		t.Errorf("Expected dataset 'products', got %v", data["dataset"])
	}
	if data["count"] != float64(30) {
		t.Errorf("Expected count 30, got %v", data["count"])
	}
}

// TestSeedNotifications tests bulk sample loading
func TestSeedNotifications(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantCount float64
	}{
		{"no body uses default", "", 10},
		{"zero count uses default", `{"count":0}`, 10},
		{"explicit count", `{"count":25}`, 25},
		{"maximum count", `{"count":200}`, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)

			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(http.MethodPost, "/api/test-data/seed/notifications", nil)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/test-data/seed/notifications", strings.NewReader(tt.body))
			}
			w := httptest.NewRecorder()

			handler.SeedNotifications(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}

			data := dataMap(t, decodeResponse(t, w))
			if data["dataset"] != "notifications" {
				t.Errorf("Expected dataset 'notifications', got %v", data["dataset"])
			}
			if data["count"] != tt.wantCount {
				t.Errorf("Expected count %v, got %v", tt.wantCount, data["count"])
			}

			if got := handler.store.Notifications.Len(); got != int(tt.wantCount) {
				t.Errorf("Expected %v stored, got %d", tt.wantCount, got)
			}
		})
	}
}

// TestSeedNotifications_Invalid tests rejected seed requests
func TestSeedNotifications_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"count above limit", `{"count":500}`, "VALIDATION_ERROR"},
		{"negative count", `{"count":-5}`, "VALIDATION_ERROR"},
		{"malformed json", `{"count":`, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/test-data/seed/notifications", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.SeedNotifications(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}

			resp := decodeResponse(t, w)
			if code := errorCode(t, resp); code != tt.wantCode {
				t.Errorf("Expected %s, got %s", tt.wantCode, code)
			}

			if handler.store.Notifications.Len() != 0 {
				t.Error("Rejected seed must not store notifications")
			}
		})
	}
}
