// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status        string         `json:"status"` // healthy or degraded
	Version       string         `json:"version"`
	AuthMode      string         `json:"auth_mode"`
	FeedRunning   bool           `json:"feed_running"`
	WSClients     int            `json:"ws_clients"`
	DatasetCounts map[string]int `json:"dataset_counts"`
	Uptime        float64        `json:"uptime"` // seconds
}
