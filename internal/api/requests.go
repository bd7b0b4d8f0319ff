// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// Package api provides HTTP request validation structs with go-playground/validator tags.
// These structs are used to validate incoming API request parameters before processing.
//
// The validation tags follow the go-playground/validator v10 syntax:
//   - required: field must be present and non-zero
//   - min,max: numeric or string length bounds
//   - oneof: value must be one of the specified options
//   - email: value must be a well-formed email address
//   - username: custom validator for login identifiers (letters, digits, . _ -)
//   - omitempty: skip validation if field is empty/zero
//
// Example usage:
//
//	req := ListNotificationsRequest{
//	    Limit:  getIntParam(r, "limit", 0),
//	    Offset: getIntParam(r, "offset", 0),
//	    Type:   r.URL.Query().Get("type"),
//	}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package api

// LoginRequestValidation represents the validated request body for POST /auth/login.
// Note: This is named differently from models.LoginRequest to avoid conflicts.
//
// Fields:
//   - Email: Required login email
//   - Password: Required password
//   - RememberMe: Optional flag to extend session duration
type LoginRequestValidation struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=1"`
	RememberMe bool
}

// RegisterRequestValidation represents the validated request body for POST /auth/register.
// The password maximum matches the bcrypt input limit of 72 bytes.
//
// Fields:
//   - Username: Required login identifier (3-32 chars, letters/digits/._-)
//   - Email: Required email address
//   - Password: Required password (8-72 chars)
//   - FirstName, LastName: Optional display names (max 50 chars)
type RegisterRequestValidation struct {
	Username  string `validate:"required,min=3,max=32,username"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=72"`
	FirstName string `validate:"omitempty,max=50"`
	LastName  string `validate:"omitempty,max=50"`
}

// CreateNotificationRequestValidation represents the validated request body
// for POST /notifications. The type set is closed because it drives toast
// styling in the practice UI.
//
// Fields:
//   - Type: Required, one of info/success/warning/error
//   - Title: Required headline (max 200 chars)
//   - Message: Optional body text (max 2000 chars)
//   - UserID: Optional target user (max 100 chars)
type CreateNotificationRequestValidation struct {
	Type    string `validate:"required,oneof=info success warning error"`
	Title   string `validate:"required,max=200"`
	Message string `validate:"omitempty,max=2000"`
	UserID  string `validate:"omitempty,max=100"`
}

// ListNotificationsRequest represents the validated query parameters for
// GET /notifications. Offset/limit pagination matches the "array push order"
// contract: limit 0 returns everything after the offset.
//
// Fields:
//   - Type: Optional type filter
//   - Offset: Items to skip (0-100000)
//   - Limit: Maximum items to return, 0 = unlimited (0-1000)
type ListNotificationsRequest struct {
	Type   string `validate:"omitempty,oneof=info success warning error"`
	Offset int    `validate:"min=0,max=100000"`
	Limit  int    `validate:"min=0,max=1000"`
}

// CreateUserRequestValidation represents the validated request body for POST /users.
//
// Fields:
//   - Username: Required login identifier (3-32 chars, letters/digits/._-)
//   - Email: Required email address
//   - Password: Required password (8-72 chars)
//   - FirstName, LastName: Optional display names (max 50 chars)
//   - Role: Optional role (user or admin, defaults to user)
type CreateUserRequestValidation struct {
	Username  string `validate:"required,min=3,max=32,username"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=72"`
	FirstName string `validate:"omitempty,max=50"`
	LastName  string `validate:"omitempty,max=50"`
	Role      string `validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequestValidation represents the validated request body for PUT /users/{id}.
// All fields are optional; nil pointers leave the stored value unchanged.
type UpdateUserRequestValidation struct {
	Username  *string `validate:"omitempty,min=3,max=32,username"`
	Email     *string `validate:"omitempty,email"`
	FirstName *string `validate:"omitempty,max=50"`
	LastName  *string `validate:"omitempty,max=50"`
	Role      *string `validate:"omitempty,oneof=user admin"`
}

// ListUsersRequest represents the validated query parameters for GET /users.
//
// Fields:
//   - Role: Optional role filter
//   - SortBy: Optional sort column
//   - SortOrder: Optional sort direction
type ListUsersRequest struct {
	Role      string `validate:"omitempty,oneof=user admin"`
	SortBy    string `validate:"omitempty,oneof=username email role created_at"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// CreateProductRequestValidation represents the validated request body for POST /products.
//
// Fields:
//   - Name: Required product name (max 200 chars)
//   - Description: Optional description (max 2000 chars)
//   - Category: Required category name (max 100 chars)
//   - Price: Non-negative price
//   - Stock: Non-negative stock count
//   - Rating: Star rating (0-5)
type CreateProductRequestValidation struct {
	Name        string  `validate:"required,max=200"`
	Description string  `validate:"omitempty,max=2000"`
	Category    string  `validate:"required,max=100"`
	Price       float64 `validate:"min=0"`
	Stock       int     `validate:"min=0"`
	Rating      float64 `validate:"min=0,max=5"`
}

// UpdateProductRequestValidation represents the validated request body for PUT /products/{id}.
// All fields are optional; nil pointers leave the stored value unchanged.
type UpdateProductRequestValidation struct {
	Name        *string  `validate:"omitempty,max=200"`
	Description *string  `validate:"omitempty,max=2000"`
	Category    *string  `validate:"omitempty,max=100"`
	Price       *float64 `validate:"omitempty,min=0"`
	Stock       *int     `validate:"omitempty,min=0"`
	Rating      *float64 `validate:"omitempty,min=0,max=5"`
}

// ListProductsRequest represents the validated query parameters for GET /products.
// MinPrice/MaxPrice of zero mean "no bound", so only the relative order is
// checked in the handler, not here.
//
// Fields:
//   - SortBy: Optional sort column
//   - SortOrder: Optional sort direction
//   - MinPrice, MaxPrice: Non-negative price bounds
type ListProductsRequest struct {
	SortBy    string  `validate:"omitempty,oneof=name category price stock rating created_at"`
	SortOrder string  `validate:"omitempty,oneof=asc desc"`
	MinPrice  float64 `validate:"min=0"`
	MaxPrice  float64 `validate:"min=0"`
}

// SeedNotificationsRequestValidation represents the validated request body for
// POST /api/test-data/seed/notifications.
//
// Fields:
//   - Count: Number of sample notifications to load (1-200, default 10)
type SeedNotificationsRequestValidation struct {
	Count int `validate:"min=1,max=200"`
}
