// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
	"github.com/tomtom215/palaestra/internal/store"
)

// This file contains the upload practice endpoints. Uploads live in the
// in-memory Badger store; nothing touches disk and everything vanishes on
// restart or reset, which is exactly what a throwaway test fixture wants.

// multipartOverhead is extra body budget beyond the file size limit for
// multipart boundaries and part headers.
const multipartOverhead = 1 << 20

// UploadFile accepts a multipart file upload
//
// @Summary Upload a file
// @Description Accepts one file in the multipart field "file" and stores it in memory
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} models.APIResponse{data=models.FileInfo} "Upload stored"
// @Failure 400 {object} models.APIResponse "Missing or unreadable file field"
// @Failure 409 {object} models.APIResponse "Upload store is at capacity"
// @Failure 413 {object} models.APIResponse "File exceeds the size limit"
// @Router /files [post]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(5 << 20)
	if h.config != nil && h.config.Store.MaxUploadBytes > 0 {
		maxBytes = h.config.Store.MaxUploadBytes
	}

	// Cap the whole request body so an oversize upload fails while streaming
	// instead of after buffering it all.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			metrics.RecordUploadRejected("too_large")
			respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("File exceeds the %d byte upload limit", maxBytes), nil)
			return
		}
		metrics.RecordUploadRejected("bad_request")
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", `Multipart field "file" is required`, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			metrics.RecordUploadRejected("too_large")
			respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("File exceeds the %d byte upload limit", maxBytes), nil)
			return
		}
		metrics.RecordUploadRejected("bad_request")
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read uploaded file", err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Strip any client-supplied directory components; only the base name is
	// stored and echoed back.
	name := filepath.Base(header.Filename)

	info, err := h.store.Files.Put(name, contentType, content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrFileTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("File exceeds the %d byte upload limit", maxBytes), nil)
		case errors.Is(err, store.ErrStoreFull):
			respondError(w, http.StatusConflict, "UPLOAD_LIMIT", "Upload store is at capacity; delete files or reset test data", nil)
		default:
			respondError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store upload", err)
		}
		return
	}

	logging.Info().
		Str("file_id", info.ID.String()).
		Str("name", sanitizeLogValue(info.Name)).
		Int64("size", info.Size).
		Msg("Upload stored")

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data:   info,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ListFiles lists stored upload metadata
//
// @Summary List uploads
// @Description Returns metadata for every stored upload in upload order
// @Tags Files
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.FileInfo} "Upload metadata"
// @Router /files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files := h.store.Files.List()
	if files == nil {
		files = []models.FileInfo{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   files,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// GetFile returns metadata for one upload
//
// @Summary Get upload metadata
// @Description Returns the metadata for one stored upload
// @Tags Files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} models.APIResponse{data=models.FileInfo} "Upload metadata"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /files/{id} [get]
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
		return
	}

	info, err := h.store.Files.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   info,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// DownloadFile streams the stored bytes of one upload
//
// @Summary Download an upload
// @Description Returns the stored file content with its original Content-Type, for download-assertion practice
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "File ID (UUID)"
// @Success 200 {file} file "File content"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /files/{id}/content [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
		return
	}

	info, content, err := h.store.Files.Content(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		logging.Error().Err(err).Str("file_id", id.String()).Msg("Failed to write file content")
	}
}

// DeleteFile removes one upload
//
// @Summary Delete an upload
// @Description Removes one stored upload and its content
// @Tags Files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} models.APIResponse "File deleted"
// @Failure 404 {object} models.APIResponse "Unknown id"
// @Router /files/{id} [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
		return
	}

	if err := h.store.Files.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
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
