// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// Package authz provides role-based authorization using Casbin.
//
// Requests flow through auth first, then authz:
//
//	Request -> auth.RequireAuth -> authz.Authorize -> Handler
//
// The subject of every check is the role carried in the JWT claims, not the
// user: the permission grid is small enough that per-user rules would be
// noise in a practice fixture. Roles inherit downward (admin > user > guest)
// via Casbin grouping policies.
//
// The model and default policy are embedded in the binary; AUTHZ_POLICY_PATH
// style overrides go through EnforcerConfig for deployments that want a
// different grid. Decisions are cached for five minutes because the grid
// only changes when an overridden policy file is edited.
//
// When AUTH_MODE=none the middleware passes every request through, keeping
// unauthenticated test runs fully functional.
package authz
