// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package models

import "time"

// FeedChannel describes one real-time data channel. Values emitted on the
// channel are clamped to [Min, Max].
type FeedChannel struct {
	Name string  `json:"name"`
	Unit string  `json:"unit"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// FeedSample is one tick of a real-time data channel, broadcast to WebSocket
// clients as a feed_sample message and queryable via GET /api/v1/feed/snapshot.
//
// Seq is strictly monotonic per channel and survives pause/resume, so UI
// widgets can detect dropped samples.
type FeedSample struct {
	Channel   string    `json:"channel"`
	Value     float64   `json:"value"`
	Delta     float64   `json:"delta"` // change from the previous sample
	Seq       uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}
