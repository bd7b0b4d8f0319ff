// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import "errors"

// Sentinel errors returned by the dataset stores. Handlers map these to
// HTTP status codes; everything else is treated as a 500.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when creating a user with an email that
	// already exists (case-insensitive).
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken is returned when creating a user with a username
	// that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrFileTooLarge is returned when an upload exceeds the per-file limit.
	ErrFileTooLarge = errors.New("file exceeds upload size limit")

	// ErrStoreFull is returned when the upload store reached its capacity.
	ErrStoreFull = errors.New("upload store is full")
)
