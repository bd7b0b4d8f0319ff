// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package main is the entry point for the Palaestra server application.

Palaestra is a self-hosted practice backend for UI automation training. It
serves the REST and WebSocket API that the practice frontend exercises:
notifications with live broadcast, user and product datasets, file uploads,
a synthetic live feed, and test-data reset endpoints that give every
automation run a known starting state.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("palaestra")
	├── DataSupervisor ("data-layer")
	│   └── Upload Janitor (only when UPLOAD_TTL > 0)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket Hub (client registry and broadcast)
	│   ├── Event Bridge (bus subscriptions -> hub)
	│   └── Feed Generator (only when FEED_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API + WebSocket upgrade + Swagger)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Datasets: In-memory stores seeded with accounts, products, notifications
 4. Event Bus: Watermill GoChannel pub/sub with circuit-breaker publisher
 5. WebSocket Hub: Client registry for real-time pushes
 6. Event Bridge: Subscribes bus topics and broadcasts to the hub
 7. Feed Generator: Synthetic metric samples (optional)
 8. Authentication: JWT or no-auth mode, plus Casbin role checks
 9. Supervisor Tree: Suture v4 process supervision
 10. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	PALAESTRA_PORT=3001          # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=console           # json or console

	# Authentication (choose one mode)
	AUTH_MODE=jwt                # jwt or none
	JWT_SECRET=<32+ chars>       # Empty generates an ephemeral secret

	# Live feed
	FEED_ENABLED=true            # Synthetic metric samples over WebSocket
	FEED_INTERVAL=2s             # Emission interval
	FEED_SEED=0                  # 0 = time-seeded, fixed value = reproducible

	# Test data
	TEST_ENDPOINTS_ENABLED=true  # /api/test-data/* reset endpoints

	# Limits
	MAX_NOTIFICATIONS=500        # Ring-buffer cap per dataset reset
	MAX_UPLOAD_BYTES=5242880     # Per-file upload cap (5 MiB)
	UPLOAD_TTL=0                 # 0 keeps uploads until reset or delete

See config.example.yaml for the complete configuration reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Disconnects WebSocket clients through the hub
 3. Waits for in-flight requests (10s timeout)
 4. Stops the feed generator and event bridge
 5. Closes the event bus and the upload store
 6. Reports any services that failed to stop

# Usage Examples

Development (no auth, frictionless for scripted flows):

	export AUTH_MODE=none
	go run ./cmd/server

Classroom rig (JWT login flows, reproducible feed):

	export AUTH_MODE=jwt
	export JWT_SECRET=$(openssl rand -base64 32)
	export FEED_SEED=42
	./palaestra

Docker:

	docker run -d \
	  -e AUTH_MODE=none \
	  -e FEED_SEED=42 \
	  -p 3001:3001 \
	  ghcr.io/tomtom215/palaestra

# Port 3001

The default port 3001 follows the convention of practice frontends running
their dev server on 3000 or 5173 with the API one port over. CORS defaults
allow both frontend origins.

# API Documentation

Swagger documentation is available at /swagger/index.html when the server
is running. The API is organized into categories:

  - Core: Health checks, readiness, server info
  - Auth: Login, logout, current user
  - Notifications: CRUD, filtering, mark-read, clear
  - Users: Paginated directory with search
  - Products: Catalog with category and price filters
  - Files: Upload, download, delete with size limits
  - Feed: Live feed status, pause/resume
  - TestData: Dataset resets for deterministic test runs
  - WebSocket: Real-time event stream at /api/v1/ws

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/eventbus: Watermill bus, publisher, bridge
  - internal/store: In-memory datasets and upload storage
*/
package main
