// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification type constants. These drive the toast styling in the UI, so
// the set is closed and validated on create.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// ValidNotificationTypes contains all valid notification types for validation.
var ValidNotificationTypes = []string{
	NotificationInfo,
	NotificationSuccess,
	NotificationWarning,
	NotificationError,
}

// IsValidNotificationType checks if a notification type is valid.
func IsValidNotificationType(t string) bool {
	for _, v := range ValidNotificationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Notification is one entry in the in-memory notification list.
//
// Created via POST /api/v1/notifications and broadcast to every connected
// WebSocket client as a notification_created message. The only ordering
// guarantee is insertion order; CreatedAt is informational.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"` // info, success, warning, error
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	UserID    string     `json:"user_id,omitempty"` // optional target user
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// CreateNotificationRequest is the request body for POST /api/v1/notifications.
type CreateNotificationRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// NotificationFilter narrows GET /api/v1/notifications results.
// Zero values mean "no constraint"; Read is a pointer so that read=false
// can be expressed as a filter distinct from "don't filter".
type NotificationFilter struct {
	Type   string
	Read   *bool
	UserID string
	Search string // case-insensitive substring over title and message
	Offset int
	Limit  int
}

// NotificationListResponse is the data payload of GET /api/v1/notifications.
// Total counts matches before offset/limit; Unread counts across the whole
// store so the bell badge never depends on the active filter.
type NotificationListResponse struct {
	Items  []Notification `json:"items"`
	Total  int            `json:"total"`
	Unread int            `json:"unread"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
