// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// Package main provides the Palaestra HTTP server
//
// Palaestra is a practice backend for UI automation training: a stable,
// resettable API surface for notifications, users, products, uploads, and a
// synthetic live feed.
//
// @title Palaestra API
// @version 1.0
// @description Practice backend for UI automation training
// @description
// @description ## Features
// @description
// @description - **Notifications**: Create, filter, mark-read, delete; every mutation broadcasts over WebSocket
// @description - **Live Feed**: Synthetic metric samples on a fixed interval, pausable, optionally seeded for reproducible runs
// @description - **Datasets**: Paginated users and products with search and price filters
// @description - **File Uploads**: Multipart uploads with size limits, stored in embedded BadgerDB
// @description - **Test Data Reset**: One call returns every dataset to its seeded state between test runs
// @description - **Simulated Latency**: `?delay=<ms>` on list endpoints for exercising loading states
// @description
// @description ## Authentication
// @description
// @description With AUTH_MODE=jwt, protected endpoints require a JWT via HTTP-only cookie.
// @description Use `/api/v1/auth/login` to obtain a token, which will be automatically included in subsequent requests.
// @description With AUTH_MODE=none, every endpoint is open for frictionless scripted flows.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description Rate limit headers are included in responses: `X-RateLimit-Limit`, `X-RateLimit-Remaining`, `X-RateLimit-Reset`.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-25T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/palaestra/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3001
// @BasePath /api/v1
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in cookie
// @name token
// @description JWT token stored in HTTP-only cookie. Obtain via /api/v1/auth/login endpoint.
//
// @tag.name Core
// @tag.description Core API endpoints for health checks, readiness, and server info
//
// @tag.name Auth
// @tag.description Authentication and session management endpoints
//
// @tag.name Notifications
// @tag.description Notification CRUD with filtering, mark-read, and clear operations; mutations broadcast over WebSocket
//
// @tag.name Users
// @tag.description Paginated user directory with search
//
// @tag.name Products
// @tag.description Product catalog with category, price, and stock filters
//
// @tag.name Files
// @tag.description File upload, download, and delete with size limits
//
// @tag.name Feed
// @tag.description Live feed status and pause/resume controls
//
// @tag.name TestData
// @tag.description Dataset reset endpoints for deterministic test runs
//
// @tag.name Realtime
// @tag.description Real-time WebSocket connection for notification and feed events
package main
