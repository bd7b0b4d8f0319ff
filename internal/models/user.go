// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants define the standard roles in the system.
// These align with the Casbin policy definitions in internal/authz/policy.csv.
const (
	// RoleGuest is the implicit role of unauthenticated requests.
	RoleGuest = "guest"

	// RoleUser is the default role for registered and seeded accounts.
	RoleUser = "user"

	// RoleAdmin has full access including dataset management.
	RoleAdmin = "admin"
)

// ValidRoles contains all assignable role names for validation.
// Guest is implicit and never stored on an account.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name is assignable to an account.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the public shape of an account. Password material never appears
// here; the store keeps the bcrypt hash on its internal record.
//
// The users dataset doubles as the data-table exercise surface, so it carries
// enough columns (name, role, active, created) to make sorting and filtering
// worth practicing against.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the admin request body for POST /api/v1/users.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`   // defaults to "user"
	Active    *bool  `json:"active,omitempty"` // defaults to true
}

// UpdateUserRequest is the admin request body for PUT /api/v1/users/{id}.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// UserFilter narrows and pages GET /api/v1/users results.
type UserFilter struct {
	Search    string // matches username, email, first or last name
	Role      string
	Page      int
	Limit     int
	SortBy    string // username, email, role, created_at (default created_at)
	SortOrder string // asc or desc (default asc)
}
