// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// errors.go - Common API error definitions
//
// This file contains sentinel errors for common API error conditions.
package api

import "errors"

// Common API errors
var (
	// ErrFeedNotAvailable indicates the live feed generator was not wired
	// into the handler (feed disabled in config)
	ErrFeedNotAvailable = errors.New("live feed is not available")

	// ErrHubNotAvailable indicates the WebSocket hub was not wired into
	// the handler
	ErrHubNotAvailable = errors.New("websocket hub is not available")

	// ErrTestDataDisabled indicates the /api/test-data endpoints are
	// switched off in config
	ErrTestDataDisabled = errors.New("test-data endpoints are disabled")
)
