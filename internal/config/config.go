// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// The zero-config case matters here: the server is a practice fixture that test
// suites boot with no environment at all, so every field has a usable default
// and nothing is required. Validation rejects malformed values, not missing ones.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Store    StoreConfig    `koanf:"store"`
	Feed     FeedConfig     `koanf:"feed"`
	TestData TestDataConfig `koanf:"testdata"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`          // Bind address (default: 0.0.0.0)
	Port         int           `koanf:"port"`          // Listen port (default: 3001)
	ReadTimeout  time.Duration `koanf:"read_timeout"`  // Request read timeout
	WriteTimeout time.Duration `koanf:"write_timeout"` // Response write timeout; must exceed api.max_delay
	IdleTimeout  time.Duration `koanf:"idle_timeout"`  // Keep-alive idle timeout
	StaticDir    string        `koanf:"static_dir"`    // SPA bundle directory; unused endpoints 404 when empty or missing
	Environment  string        `koanf:"environment"`   // "development" or "production"
}

// SecurityConfig holds authentication and request-protection settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`           // "jwt" or "none"
	JWTSecret         string        `koanf:"jwt_secret"`          // Min 32 chars when set; empty generates an ephemeral secret at startup
	SessionTimeout    time.Duration `koanf:"session_timeout"`     // Token lifetime (default: 24h)
	RememberMeTimeout time.Duration `koanf:"remember_me_timeout"` // Extended token lifetime for remember_me logins (default: 720h)
	BcryptCost        int           `koanf:"bcrypt_cost"`         // Password hash cost, 4..31 (default: 10)
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`     // Requests per window for the general API limiter
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`   // General API limiter window
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"` // Disable all rate limiting (load-test runs)
	CORSOrigins       []string      `koanf:"cors_origins"`        // Allowed browser origins (default: Vite + CRA dev servers)
	TrustedProxies    []string      `koanf:"trusted_proxies"`     // Proxy IPs whose X-Forwarded-For is honored
}

// APIConfig holds pagination and response-shaping limits.
type APIConfig struct {
	DefaultPageSize int           `koanf:"default_page_size"` // Page size when the client sends none (default: 10)
	MaxPageSize     int           `koanf:"max_page_size"`     // Upper clamp for client-requested page sizes (default: 100)
	MaxDelay        time.Duration `koanf:"max_delay"`         // Upper clamp for the ?delay= simulation parameter (default: 10s)
}

// StoreConfig bounds the in-memory datasets so a long soak test cannot
// grow the process without limit.
type StoreConfig struct {
	MaxNotifications int           `koanf:"max_notifications"` // Oldest notifications are dropped past this count (default: 500)
	MaxUploadBytes   int64         `koanf:"max_upload_bytes"`  // Per-file upload size limit (default: 5 MiB)
	MaxUploads       int           `koanf:"max_uploads"`       // Total stored upload count (default: 100)
	UploadTTL        time.Duration `koanf:"upload_ttl"`        // 0 keeps uploads until reset or delete
}

// FeedConfig controls the synthetic live-data generator.
type FeedConfig struct {
	Enabled  bool            `koanf:"enabled"`  // Start the generator at boot (default: true)
	Interval time.Duration   `koanf:"interval"` // Emission period per channel (default: 2s)
	Seed     int64           `koanf:"seed"`     // RNG seed; 0 seeds from the clock
	Channels []ChannelConfig `koanf:"channels"` // Channel set; empty uses the built-in defaults
}

// ChannelConfig describes one synthetic feed channel.
type ChannelConfig struct {
	Name string  `koanf:"name"`
	Unit string  `koanf:"unit"`
	Min  float64 `koanf:"min"`
	Max  float64 `koanf:"max"`
}

// TestDataConfig gates the unversioned /api/test-data/* endpoints.
type TestDataConfig struct {
	Enabled bool `koanf:"enabled"` // Default: true; disable when exposing the server beyond a test bench
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // "console" or "json"
	Caller bool   `koanf:"caller"` // Include file:line in log events
}

// Load reads the server configuration from layered sources:
//
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthEnabled reports whether requests must carry credentials.
func (c *SecurityConfig) AuthEnabled() bool {
	return c.AuthMode != "none"
}

// EffectiveChannels returns the configured channel set, or the built-in
// defaults when the config names none.
func (c *FeedConfig) EffectiveChannels() []ChannelConfig {
	if len(c.Channels) > 0 {
		return c.Channels
	}
	return DefaultFeedChannels
}
