// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package auth provides session token management and authentication middleware.

The practice server supports two authentication modes (configured via
AUTH_MODE):

1. JWT Mode (default):
  - HS256 tokens with configurable expiry (default: 24h, remember-me: 30d)
  - Tokens delivered as HTTP-only cookies plus a response-body copy
  - When JWT_SECRET is unset, an ephemeral random secret is generated at
    startup; sessions then die with the process, which is the intended
    behavior for throwaway test environments

2. None Mode:
  - Every request passes through unauthenticated
  - Login/register endpoints still work so auth-flow pages stay testable

Usage:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)

	r.Group(func(r chi.Router) {
	    r.Use(mw.RequireAuth)
	    r.Get("/api/v1/auth/profile", handler.Profile)
	})

Tokens are read from the Authorization header (Bearer), the "token" cookie,
or the "token" query parameter, in that order. The query parameter exists
for browser WebSocket clients, which cannot set request headers.

Password hashing lives with the user store (bcrypt, cost from BCRYPT_COST);
this package never sees plaintext passwords.

See Also:

  - internal/api: login/register/logout handlers
  - internal/authz: role checks layered on top of the claims
*/
package auth
