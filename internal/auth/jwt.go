// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/palaestra/internal/config"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/models"
)

// Claims are the JWT claims issued on login. UserID doubles as the
// registered Subject; the profile fields are denormalized into the token so
// the UI can render the session without a follow-up request.
type Claims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager creates and validates HS256 session tokens.
type JWTManager struct {
	secret            []byte
	sessionTimeout    time.Duration
	rememberMeTimeout time.Duration
}

// NewJWTManager creates a token manager from the security configuration.
//
// When JWT_SECRET is empty an ephemeral random secret is generated, which is
// the expected mode for throwaway test environments: every token signed with
// it dies with the process. The startup log calls this out loudly so nobody
// ships a deployment that silently logs everyone out on restart.
//
// Secrets shorter than 32 characters are rejected by config validation
// before this constructor runs.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate ephemeral JWT secret: %w", err)
		}
		logging.Warn().
			Str("secret_prefix", hex.EncodeToString(secret[:4])).
			Msg("JWT_SECRET not set; generated an ephemeral secret, sessions will not survive a restart")
	}

	return &JWTManager{
		secret:            secret,
		sessionTimeout:    cfg.SessionTimeout,
		rememberMeTimeout: cfg.RememberMeTimeout,
	}, nil
}

// GenerateToken creates a signed session token for an authenticated account.
// rememberMe selects the long-lived expiry window; the returned time is the
// token's expiry, for cookie Max-Age and the login response body.
func (m *JWTManager) GenerateToken(user models.User, rememberMe bool) (string, time.Time, error) {
	timeout := m.sessionTimeout
	if rememberMe {
		timeout = m.rememberMeTimeout
	}

	now := time.Now()
	expiresAt := now.Add(timeout)

	claims := &Claims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken checks the signature, expiry, and signing algorithm of a
// token and returns its claims.
//
// The algorithm check pins HMAC to block algorithm-confusion tokens (e.g. a
// token re-signed as "none" or RS256 with the public key as HMAC secret).
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
