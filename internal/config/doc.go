// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package config provides centralized configuration management for Palaestra.

This package handles loading, validation, and parsing of configuration for all
application components. Every setting has a sensible default: the server is a
practice fixture that CI jobs boot with no environment at all, so nothing is
required and validation only rejects malformed values.

# Configuration Sources

Configuration is loaded with Koanf v2 from three layers, later layers winning:

  - Built-in defaults (always present)
  - Optional YAML config file (config.yaml, or CONFIG_PATH)
  - Environment variables

# Environment Variables

HTTP Server (ServerConfig):
  - PALAESTRA_HOST: Bind address (default: 0.0.0.0)
  - PALAESTRA_PORT: Listen port (default: 3001)
  - HTTP_READ_TIMEOUT: Request read timeout (default: 15s)
  - HTTP_WRITE_TIMEOUT: Response write timeout (default: 15s)
  - HTTP_IDLE_TIMEOUT: Keep-alive idle timeout (default: 60s)
  - STATIC_DIR: SPA bundle directory (default: ./frontend/dist)
  - ENVIRONMENT: development or production (default: development)

Authentication & protection (SecurityConfig):
  - AUTH_MODE: Authentication mode: jwt or none (default: jwt)
  - JWT_SECRET: JWT signing secret, min 32 chars; empty generates an
    ephemeral random secret at startup
  - SESSION_TIMEOUT: Token lifetime (default: 24h)
  - REMEMBER_ME_TIMEOUT: Extended token lifetime (default: 720h)
  - BCRYPT_COST: Password hash cost 4-31 (default: 10)
  - RATE_LIMIT_REQUESTS: Requests per window (default: 100)
  - RATE_LIMIT_WINDOW: Limiter window (default: 1m)
  - DISABLE_RATE_LIMIT: Disable all rate limiting (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins
    (default: http://localhost:5173,http://localhost:3000)
  - TRUSTED_PROXIES: Comma-separated proxy IPs

API shaping (APIConfig):
  - API_DEFAULT_PAGE_SIZE: Page size when unspecified (default: 10)
  - API_MAX_PAGE_SIZE: Page size clamp (default: 100)
  - API_MAX_DELAY: Clamp for the ?delay= parameter (default: 10s)

Dataset bounds (StoreConfig):
  - MAX_NOTIFICATIONS: Notification cap, oldest dropped (default: 500)
  - MAX_UPLOAD_BYTES: Per-file upload limit (default: 5242880)
  - MAX_UPLOADS: Stored upload cap (default: 100)
  - UPLOAD_TTL: Upload retention, 0 keeps forever (default: 0)

Live feed (FeedConfig):
  - FEED_ENABLED: Start the generator at boot (default: true)
  - FEED_INTERVAL: Emission period (default: 2s)
  - FEED_SEED: RNG seed, 0 seeds from the clock (default: 0)

Test data endpoints (TestDataConfig):
  - TEST_ENDPOINTS_ENABLED: Expose /api/test-data/* (default: true)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: console or json (default: console)
  - LOG_CALLER: Include file:line (default: false)

# Usage Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Listening on %s\n", cfg.Server.Addr())

# Thread Safety

The Config struct is immutable after LoadWithKoanf() returns, making it safe
for concurrent access from multiple goroutines without synchronization.
*/
package config
