// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/palaestra/internal/auth"
	"github.com/tomtom215/palaestra/internal/feed"
)

// newFeedHandler builds a handler with an unstarted generator wired in.
// The channel shape comes from the default channel set.
func newFeedHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := newTestConfig()
	st := newTestStore(t, cfg)
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	gen := feed.NewGenerator(cfg.Feed, nil)
	return NewHandler(st, nil, nil, gen, cfg, jwtManager)
}

// TestFeedEndpoints_Unavailable tests every feed endpoint against a handler
// without a generator
func TestFeedEndpoints_Unavailable(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t)

	endpoints := []struct {
		name string
		call func(http.ResponseWriter, *http.Request)
	}{
		{"channels", handler.FeedChannels},
		{"snapshot", handler.FeedSnapshot},
		{"pause", handler.FeedPause},
		{"resume", handler.FeedResume},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/channels", nil)
			w := httptest.NewRecorder()

			ep.call(w, req)

			if w.Code != http.StatusServiceUnavailable {
				t.Fatalf("Expected status 503, got %d", w.Code)
			}

			resp := decodeResponse(t, w)
			if code := errorCode(t, resp); code != "SERVICE_UNAVAILABLE" {
				t.Errorf("Expected SERVICE_UNAVAILABLE, got %s", code)
			}
			if resp.Error.Message != "Live feed is not available" {
				t.Errorf("Unexpected message %q", resp.Error.Message)
			}
		})
	}
}

// TestFeedChannels tests the channel descriptor listing
func TestFeedChannels(t *testing.T) {
	t.Parallel()

	handler := newFeedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/channels", nil)
	w := httptest.NewRecorder()

	handler.FeedChannels(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeResponse(t, w)
	channels, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("Expected channels array, got %T", resp.Data)
	}
	if len(channels) != 4 {
		t.Fatalf("Expected 4 default channels, got %d", len(channels))
	}

	first := channels[0].(map[string]interface{})
	if first["name"] != "cpu_load" {
		t.Errorf("Expected cpu_load first, got %v", first["name"])
	}
	if first["unit"] != "percent" {
		t.Errorf("Expected percent unit, got %v", first["unit"])
	}
	if first["min"] != float64(0) || first["max"] != float64(100) {
		t.Errorf("Expected 0..100 range, got %v..%v", first["min"], first["max"])
	}
}

// TestFeedSnapshot tests the snapshot of an idle generator
func TestFeedSnapshot(t *testing.T) {
	t.Parallel()

	handler := newFeedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/snapshot", nil)
	w := httptest.NewRecorder()

	handler.FeedSnapshot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	// Nothing has been emitted, so the snapshot is an empty array, not null.
	resp := decodeResponse(t, w)
	samples, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("Expected samples array, got %T (body %s)", resp.Data, w.Body.String())
	}
	if len(samples) != 0 {
		t.Errorf("Expected no samples before the first tick, got %d", len(samples))
	}
}

// TestFeedPauseResume tests the pause and resume state transitions
func TestFeedPauseResume(t *testing.T) {
	t.Parallel()

	handler := newFeedHandler(t)

	pause := func() map[string]interface{} {
		w := httptest.NewRecorder()
		handler.FeedPause(w, httptest.NewRequest(http.MethodPost, "/api/v1/feed/pause", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		return dataMap(t, decodeResponse(t, w))
	}
	resume := func() map[string]interface{} {
		w := httptest.NewRecorder()
		handler.FeedResume(w, httptest.NewRequest(http.MethodPost, "/api/v1/feed/resume", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		return dataMap(t, decodeResponse(t, w))
	}

	state := pause()
	if state["paused"] != true {
		t.Errorf("Expected paused true, got %v", state["paused"])
	}
	// The generator was never started in this fixture.
	if state["running"] != false {
		t.Errorf("Expected running false, got %v", state["running"])
	}

	// Pausing twice is fine.
	state = pause()
	if state["paused"] != true {
		t.Errorf("Expected paused to stay true, got %v", state["paused"])
	}

	state = resume()
	if state["paused"] != false {
		t.Errorf("Expected paused false after resume, got %v", state["paused"])
	}

	// Resuming an already-running feed is fine too.
	state = resume()
	if state["paused"] != false {
		t.Errorf("Expected paused to stay false, got %v", state["paused"])
	}
}
