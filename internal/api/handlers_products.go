// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/models"
	"github.com/tomtom215/palaestra/internal/store"
)

// This file contains the product catalog endpoints behind the search and
// filter practice pages. Reads are public; writes require the admin role.

// ListProducts handles product list requests with filtering and sorting
//
// @Summary List products
// @Description Returns a page of the product catalog with search, category, price and stock filters, and column sorting
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param search query string false "Case-insensitive substring over name and description"
// @Param category query string false "Filter by category"
// @Param min_price query number false "Minimum price" minimum(0)
// @Param max_price query number false "Maximum price" minimum(0)
// @Param in_stock query bool false "Filter by stock availability"
// @Param sort_by query string false "Sort column" Enums(name, category, price, stock, rating, created_at)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param delay query int false "Artificial response delay in milliseconds"
// @Success 200 {object} models.APIResponse{data=models.ListResponse} "Products retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := h.pageParams(r)

	filter := models.ProductFilter{
		Search:    r.URL.Query().Get("search"),
		Category:  r.URL.Query().Get("category"),
		MinPrice:  getFloatParam(r, "min_price", 0),
		MaxPrice:  getFloatParam(r, "max_price", 0),
		InStock:   getBoolParam(r, "in_stock"),
		Page:      page,
		Limit:     limit,
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	req := ListProductsRequest{
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		MinPrice:  filter.MinPrice,
		MaxPrice:  filter.MaxPrice,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "min_price must not exceed max_price", nil)
		return
	}

	if err := h.applyDelay(r); err != nil {
		return
	}

	start := time.Now()
	products, total := h.store.Products.List(filter)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.ListResponse{
			Items: products,
			Meta:  models.NewListMeta(page, limit, total),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// ProductCategories returns the distinct category names
//
// @Summary List product categories
// @Description Returns the distinct category names in the catalog, for filter dropdowns
// @Tags Products
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]string} "Category names"
// @Router /products/categories [get]
func (h *Handler) ProductCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.store.Products.Categories()
	if categories == nil {
		categories = []string{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   categories,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// GetProduct handles single product lookups
//
// @Summary Get a product
// @Description Returns one catalog entry by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.APIResponse{data=models.Product} "Product found"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	product, err := h.store.Products.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   product,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// CreateProduct handles admin product creation
//
// @Summary Create a product
// @Description Adds a catalog entry (admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.CreateProductRequest true "Product to create"
// @Success 201 {object} models.APIResponse{data=models.Product} "Product created"
// @Failure 400 {object} models.APIResponse "Invalid body"
// @Failure 403 {object} models.APIResponse "Requires the admin role"
// @Router /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := CreateProductRequestValidation{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	product := h.store.Products.Create(req)

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   product,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// UpdateProduct handles admin product updates
//
// @Summary Update a product
// @Description Updates the provided fields of a catalog entry (admin only)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID (UUID)"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.Product} "Updated product"
// @Failure 400 {object} models.APIResponse "Invalid body"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /products/{id} [put]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := UpdateProductRequestValidation{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	product, err := h.store.Products.Update(id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update product", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   product,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// DeleteProduct handles admin product deletion
//
// @Summary Delete a product
// @Description Removes a catalog entry (admin only)
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.APIResponse "Product deleted"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	if err := h.store.Products.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"id": id.String()},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
