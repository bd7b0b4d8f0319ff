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

// This file contains the user dataset endpoints. The users table is the
// sort/filter/paginate practice surface, so the list endpoint carries the
// full data-table parameter set.

// ListUsers handles user list requests with paging and sorting
//
// @Summary List users
// @Description Returns a page of user accounts with search, role filter, and column sorting
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param search query string false "Matches username, email, first or last name"
// @Param role query string false "Filter by role" Enums(user, admin)
// @Param sort_by query string false "Sort column" Enums(username, email, role, created_at)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param delay query int false "Artificial response delay in milliseconds"
// @Success 200 {object} models.APIResponse{data=models.ListResponse} "Users retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := h.pageParams(r)

	filter := models.UserFilter{
		Search:    r.URL.Query().Get("search"),
		Role:      r.URL.Query().Get("role"),
		Page:      page,
		Limit:     limit,
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	req := ListUsersRequest{
		Role:      filter.Role,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.applyDelay(r); err != nil {
		return
	}

	start := time.Now()
	users, total := h.store.Users.List(filter)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.ListResponse{
			Items: users,
			Meta:  models.NewListMeta(page, limit, total),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GetUser handles single user lookups
//
// @Summary Get a user
// @Description Returns one user account by id
// @Tags Users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} models.APIResponse{data=models.User} "User found"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	user, err := h.store.Users.GetByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   user,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// CreateUser handles admin user creation
//
// @Summary Create a user
// @Description Creates a user account (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.CreateUserRequest true "Account to create"
// @Success 201 {object} models.APIResponse{data=models.User} "User created"
// @Failure 400 {object} models.APIResponse "Invalid body"
// @Failure 403 {object} models.APIResponse "Requires the admin role"
// @Failure 409 {object} models.APIResponse "Email or username already taken"
// @Router /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := CreateUserRequestValidation{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.store.Users.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			respondError(w, http.StatusConflict, "EMAIL_EXISTS", "Email is already registered", nil)
		case errors.Is(err, store.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "USERNAME_EXISTS", "Username is already taken", nil)
		default:
			respondError(w, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create user", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   user,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// UpdateUser handles admin user updates
//
// @Summary Update a user
// @Description Updates the provided fields of a user account (admin only)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID (UUID)"
// @Param user body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.APIResponse{data=models.User} "Updated user"
// @Failure 400 {object} models.APIResponse "Invalid body"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Failure 409 {object} models.APIResponse "Email or username already taken"
// @Router /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := UpdateUserRequestValidation{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.store.Users.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		case errors.Is(err, store.ErrEmailTaken):
			respondError(w, http.StatusConflict, "EMAIL_EXISTS", "Email is already registered", nil)
		case errors.Is(err, store.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "USERNAME_EXISTS", "Username is already taken", nil)
		default:
			respondError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update user", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   user,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// DeleteUser handles admin user deletion
//
// @Summary Delete a user
// @Description Deletes a user account (admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} models.APIResponse "User deleted"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	if err := h.store.Users.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
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
