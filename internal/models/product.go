// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog entry for the search/filter and data-table pages.
//
// The default catalog is deterministic (same names, prices, and order on
// every seed) so that table assertions in browser tests stay stable.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	InStock     bool      `json:"in_stock"` // derived: Stock > 0
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest is the admin request body for POST /api/v1/products.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating,omitempty"`
}

// UpdateProductRequest is the admin request body for PUT /api/v1/products/{id}.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// ProductFilter narrows and pages GET /api/v1/products results.
// MinPrice/MaxPrice of zero mean "no bound"; InStock is a tri-state.
type ProductFilter struct {
	Search    string // case-insensitive substring over name and description
	Category  string
	MinPrice  float64
	MaxPrice  float64
	InStock   *bool
	Page      int
	Limit     int
	SortBy    string // name, category, price, stock, rating, created_at
	SortOrder string // asc or desc
}
