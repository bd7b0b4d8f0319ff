// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that configuration values are well formed. Nothing is
// required: the fixture must boot with zero environment, so validation
// only rejects values that would misbehave at runtime.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateFeed(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PALAESTRA_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must be positive")
	}
	// A delayed response slower than the write timeout would be cut off
	// mid-body, which reads as a server bug rather than a simulated delay.
	if c.Server.WriteTimeout <= c.API.MaxDelay {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT (%v) must exceed API_MAX_DELAY (%v)", c.Server.WriteTimeout, c.API.MaxDelay)
	}
	return nil
}

// validateSecurity validates authentication and rate limit configuration
func (c *Config) validateSecurity() error {
	if err := c.validateAuthMode(); err != nil {
		return err
	}

	if err := c.validateJWTSecret(); err != nil {
		return err
	}

	if err := c.validateBcryptCost(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// validAuthModes defines the allowed authentication modes
var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

// validateAuthMode checks if auth mode is valid
func (c *Config) validateAuthMode() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}
	return nil
}

// minJWTSecretLength is the minimum length for an explicitly configured JWT secret.
// Shorter secrets are brute-forceable; an empty secret is allowed and replaced
// with an ephemeral random one at startup.
const minJWTSecretLength = 32

// validateJWTSecret validates an explicitly configured JWT secret
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return nil // Ephemeral secret generated at startup
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (got %d)", minJWTSecretLength, len(c.Security.JWTSecret))
	}
	return nil
}

// Bcrypt cost bounds per golang.org/x/crypto/bcrypt
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validateBcryptCost validates the password hashing cost
func (c *Config) validateBcryptCost() error {
	if c.Security.BcryptCost < minBcryptCost || c.Security.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}
	return nil
}

// validateCORS validates CORS configuration.
// Wildcard origins with authentication enabled are rejected in production:
// any site could then replay stolen credentials against the API.
func (c *Config) validateCORS() error {
	if c.Security.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled. " +
			"Either set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateAPI validates pagination and delay limits
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be at least API_DEFAULT_PAGE_SIZE (%d)", c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.MaxDelay < 0 {
		return fmt.Errorf("API_MAX_DELAY must not be negative")
	}
	return nil
}

// validateStore validates dataset bounds
func (c *Config) validateStore() error {
	if c.Store.MaxNotifications < 1 {
		return fmt.Errorf("MAX_NOTIFICATIONS must be at least 1")
	}
	if c.Store.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1")
	}
	if c.Store.MaxUploads < 1 {
		return fmt.Errorf("MAX_UPLOADS must be at least 1")
	}
	if c.Store.UploadTTL < 0 {
		return fmt.Errorf("UPLOAD_TTL must not be negative")
	}
	return nil
}

// validateFeed validates the synthetic feed generator configuration
func (c *Config) validateFeed() error {
	if !c.Feed.Enabled {
		return nil
	}

	if c.Feed.Interval <= 0 {
		return fmt.Errorf("FEED_INTERVAL must be positive")
	}

	seen := make(map[string]bool, len(c.Feed.Channels))
	for _, ch := range c.Feed.Channels {
		if ch.Name == "" {
			return fmt.Errorf("feed channel name must not be empty")
		}
		if seen[ch.Name] {
			return fmt.Errorf("feed channel %q is defined more than once", ch.Name)
		}
		seen[ch.Name] = true
		if ch.Min >= ch.Max {
			return fmt.Errorf("feed channel %q: min (%v) must be below max (%v)", ch.Name, ch.Min, ch.Max)
		}
	}
	return nil
}

// validLogLevels defines the allowed logging levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if f := strings.ToLower(c.Logging.Format); f != "console" && f != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: console, json")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}
