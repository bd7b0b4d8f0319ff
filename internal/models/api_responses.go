// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import (
	"time"
)

// APIResponse is the standard envelope for all JSON API responses.
//
// Every endpoint, success or failure, responds with this shape so that
// automation suites can assert on a single contract:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"..."}}
//	{"status":"error","error":{"code":"NOT_FOUND","message":"..."}}
type APIResponse struct {
	Status   string      `json:"status"` // "success" or "error"
	Data     interface{} `json:"data,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// APIError carries a machine-readable error code alongside the human message.
// Codes are stable identifiers (VALIDATION_ERROR, NOT_FOUND, INVALID_CREDENTIALS)
// that tests match on; messages may change wording freely.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Metadata describes the response itself.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// ListMeta is the pagination block attached to table-style list responses.
// The data-table UI pages by number, so this is page/limit based rather than
// cursor based.
type ListMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewListMeta computes the derived pagination fields.
func NewListMeta(page, limit, totalCount int) ListMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return ListMeta{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// ListResponse pairs a page of items with its pagination block.
type ListResponse struct {
	Items interface{} `json:"items"`
	Meta  ListMeta    `json:"meta"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
// The practice UI logs in with email, not username.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginResponse is returned by login and register on success. The token is
// also set as an HTTP-only cookie; the body copy exists for API-level tests
// and non-browser clients.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// CountResponse reports how many items an aggregate operation touched.
// Used by mark-all-read, clear, and the test-data endpoints.
type CountResponse struct {
	Count int `json:"count"`
}

// ResetResponse reports the per-dataset outcome of a test-data reset.
type ResetResponse struct {
	NotificationsCleared int `json:"notifications_cleared"`
	UsersCleared         int `json:"users_cleared"`
	FilesCleared         int `json:"files_cleared"`
	ProductsRestored     int `json:"products_restored"`
}

// SeedResponse reports the outcome of a test-data seed call.
type SeedResponse struct {
	Dataset string `json:"dataset"`
	Count   int    `json:"count"`
}
