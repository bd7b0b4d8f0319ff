// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import (
	"time"

	"github.com/google/uuid"
)

// FileInfo is the metadata for an uploaded file. Content lives in the
// in-memory blob store and is never written to disk; everything vanishes
// on reset or restart.
type FileInfo struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
