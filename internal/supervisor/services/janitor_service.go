// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package services

import (
	"context"
	"time"
)

// ExpiredPruner interface matches *store.FileStore's PruneExpired method.
//
// This interface allows the UploadJanitorService to work with the file store
// without importing the store package, avoiding circular dependencies.
type ExpiredPruner interface {
	PruneExpired() int
}

// UploadJanitorService prunes expired upload metadata on a timer.
//
// Badger expires upload content on its own when a TTL is configured, but the
// file store's metadata map only notices on the next access. Without the
// janitor, an idle server would report stale dataset counts in /health and
// the Prometheus gauge. One prune per interval keeps both honest.
//
// Example usage:
//
//	svc := services.NewUploadJanitorService(st.Files, time.Minute)
//	tree.AddDataService(svc)
type UploadJanitorService struct {
	store    ExpiredPruner
	interval time.Duration
	name     string
}

// NewUploadJanitorService creates a new upload janitor service wrapper.
//
// The interval determines how often expired metadata is pruned. A zero or
// negative interval defaults to one minute, which is far finer than any
// sensible upload TTL.
func NewUploadJanitorService(store ExpiredPruner, interval time.Duration) *UploadJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &UploadJanitorService{
		store:    store,
		interval: interval,
		name:     "upload-janitor",
	}
}

// Serve implements suture.Service.
//
// This method prunes on each tick until the context is canceled. Pruning
// cannot fail; the only exit is shutdown.
func (s *UploadJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.store.PruneExpired()
		}
	}
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *UploadJanitorService) String() string {
	return s.name
}
