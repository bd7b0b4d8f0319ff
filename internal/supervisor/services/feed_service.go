// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package services

import (
	"context"
)

// SampleEmitter interface matches *feed.Generator's Serve method.
//
// This interface allows the FeedService to work with the generator without
// importing the feed package, avoiding circular dependencies.
type SampleEmitter interface {
	Serve(ctx context.Context) error
}

// FeedService wraps the feed generator as a supervised service.
//
// The generator's Serve method already implements the suture.Service
// pattern (start emission loop, block on context, stop), so this wrapper
// delegates to it and provides a name for logging.
//
// Pause state does not survive a restart: a restarted generator resumes
// emitting. Sequence numbers do survive, because they live in the
// generator value, not the loop.
//
// Example usage:
//
//	gen := feed.NewGenerator(cfg.Feed, publisher)
//	svc := services.NewFeedService(gen)
//	tree.AddMessagingService(svc)
type FeedService struct {
	generator SampleEmitter
	name      string
}

// NewFeedService creates a new feed service wrapper.
func NewFeedService(generator SampleEmitter) *FeedService {
	return &FeedService{
		generator: generator,
		name:      "feed-generator",
	}
}

// Serve implements suture.Service.
//
// This method delegates to generator.Serve which:
//  1. Starts the emission loop goroutine
//  2. Blocks until the context is canceled
//  3. Stops the loop and waits for it to drain
//
// The method returns ctx.Err() on normal shutdown.
func (f *FeedService) Serve(ctx context.Context) error {
	return f.generator.Serve(ctx)
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (f *FeedService) String() string {
	return f.name
}
