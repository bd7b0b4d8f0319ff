// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package models defines data structures for the Palaestra application.

This package contains all data models used throughout the application: the
in-memory datasets served to the practice UI, API request/response structures,
and real-time event payloads. It is the single source of truth for data
structure definitions.

Model Categories:

1. Dataset Models (internal/store):
  - Notification: In-memory notification list entries
  - User: Seeded practice accounts and registered users
  - Product: Deterministic catalog for data-table exercises
  - FileInfo: Uploaded file metadata

2. API Request/Response Models:
  - APIResponse: Standard response wrapper
  - APIError: Error details with machine-readable codes
  - Metadata: Response metadata (timestamp, query time)
  - ListMeta: Page-numbered pagination for table endpoints

3. Real-time Models:
  - FeedSample: One tick of a real-time data channel
  - FeedChannel: Channel descriptor (unit, bounds)

All JSON serialization goes through goccy/go-json; field tags here are the
wire contract the frontend and the automation suites assert against.
*/
package models
