// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/eventbus"
	"github.com/tomtom215/palaestra/internal/models"
)

// This file contains the notification endpoints: the create → broadcast →
// list/mark-read/delete loop that toast and badge automation exercises.
//
// Every mutation publishes exactly one event through the bus; the bridge
// relays it to WebSocket clients. Publishing is best-effort: the REST
// response reports the store outcome regardless of delivery.

// ListNotifications handles notification list requests with filtering
//
// @Summary List notifications
// @Description Returns notifications newest-first with optional type/read/user/search filters and offset/limit pagination
// @Tags Notifications
// @Produce json
// @Param type query string false "Filter by type" Enums(info, success, warning, error)
// @Param read query bool false "Filter by read state"
// @Param user_id query string false "Filter by target user"
// @Param search query string false "Case-insensitive substring over title and message"
// @Param offset query int false "Items to skip" default(0) minimum(0)
// @Param limit query int false "Maximum items to return, 0 = all" default(0) minimum(0) maximum(1000)
// @Param delay query int false "Artificial response delay in milliseconds (loading-state practice)"
// @Success 200 {object} models.APIResponse{data=models.NotificationListResponse} "Notifications retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /notifications [get]
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseNotificationFilter(r)
	if apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.applyDelay(r); err != nil {
		return
	}

	start := time.Now()
	items, total := h.store.Notifications.List(filter)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.NotificationListResponse{
			Items:  items,
			Total:  total,
			Unread: h.store.Notifications.UnreadCount(),
			Offset: filter.Offset,
			Limit:  filter.Limit,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// parseNotificationFilter extracts and validates notification list parameters.
func parseNotificationFilter(r *http.Request) (models.NotificationFilter, *models.APIError) {
	filter := models.NotificationFilter{
		Type:   r.URL.Query().Get("type"),
		Read:   getBoolParam(r, "read"),
		UserID: r.URL.Query().Get("user_id"),
		Search: r.URL.Query().Get("search"),
		Offset: getIntParam(r, "offset", 0),
		Limit:  getIntParam(r, "limit", 0),
	}

	req := ListNotificationsRequest{
		Type:   filter.Type,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return models.NotificationFilter{}, apiErr
	}

	return filter, nil
}

// CreateNotification handles notification creation and broadcast
//
// @Summary Create a notification
// @Description Stores a notification and broadcasts a notification_created event to all WebSocket clients
// @Tags Notifications
// @Accept json
// @Produce json
// @Param notification body models.CreateNotificationRequest true "Notification to create"
// @Success 201 {object} models.APIResponse{data=models.Notification} "Notification created"
// @Failure 400 {object} models.APIResponse "Invalid body or notification type"
// @Router /notifications [post]
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	validationReq := CreateNotificationRequestValidation{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		UserID:  req.UserID,
	}
	if apiErr := validateRequest(&validationReq); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	created := h.store.Notifications.Create(req)

	event, err := eventbus.NewNotificationCreated(created)
	h.publish(r.Context(), event, err)

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   created,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// GetNotification handles single notification lookups
//
// @Summary Get a notification
// @Description Returns one notification by id
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} models.APIResponse{data=models.Notification} "Notification found"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /notifications/{id} [get]
func (h *Handler) GetNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	notification, err := h.store.Notifications.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   notification,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// MarkNotificationRead marks one notification as read
//
// @Summary Mark a notification read
// @Description Marks a notification read (idempotent) and broadcasts a notification_read event
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} models.APIResponse{data=models.Notification} "Updated notification"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	notification, err := h.store.Notifications.MarkRead(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	event, evtErr := eventbus.NewNotificationRead(notification)
	h.publish(r.Context(), event, evtErr)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   notification,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// MarkAllNotificationsRead marks every notification as read
//
// @Summary Mark all notifications read
// @Description Marks every unread notification read and broadcasts one notifications_marked_read event with the count
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CountResponse} "Number of notifications flipped"
// @Router /notifications/read-all [post]
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	count := h.store.Notifications.MarkAllRead()

	event, err := eventbus.NewNotificationsMarkedRead(count)
	h.publish(r.Context(), event, err)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.CountResponse{Count: count},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// DeleteNotification removes one notification
//
// @Summary Delete a notification
// @Description Deletes a notification and broadcasts a notification_deleted event
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID (UUID)"
// @Success 200 {object} models.APIResponse "Notification deleted"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /notifications/{id} [delete]
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	if err := h.store.Notifications.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
		return
	}

	event, evtErr := eventbus.NewNotificationDeleted(id)
	h.publish(r.Context(), event, evtErr)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"id": id.String()},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ClearNotifications removes every notification
//
// @Summary Clear all notifications
// @Description Removes every notification and broadcasts one notifications_cleared event with the count
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CountResponse} "Number of notifications removed"
// @Router /notifications [delete]
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	count := h.store.Notifications.Clear()

	event, err := eventbus.NewNotificationsCleared(count)
	h.publish(r.Context(), event, err)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.CountResponse{Count: count},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
