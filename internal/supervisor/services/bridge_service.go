// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package services

import (
	"context"
)

// TopicForwarder interface matches *eventbus.Bridge's Run method.
//
// This interface allows the BridgeService to work with the bridge without
// importing the eventbus package, avoiding circular dependencies.
type TopicForwarder interface {
	Run(ctx context.Context) error
}

// BridgeService wraps the event bridge as a supervised service.
//
// The bridge subscribes to every bus topic and forwards events to WebSocket
// clients. Its Run method already blocks until the context is canceled, so
// this wrapper delegates and provides a name for logging.
//
// A restart re-subscribes to all topics. Events published while the bridge
// is down are lost, which is acceptable: the feed emits a fresh sample
// within a second and REST reads always reflect current store state.
//
// Example usage:
//
//	bridge, _ := eventbus.NewBridge(bus, hub, wmLogger)
//	svc := services.NewBridgeService(bridge)
//	tree.AddMessagingService(svc)
type BridgeService struct {
	bridge TopicForwarder
	name   string
}

// NewBridgeService creates a new bridge service wrapper.
func NewBridgeService(bridge TopicForwarder) *BridgeService {
	return &BridgeService{
		bridge: bridge,
		name:   "event-bridge",
	}
}

// Serve implements suture.Service.
//
// This method delegates to bridge.Run which:
//  1. Subscribes to all bus topics
//  2. Forwards each event to the hub as a client frame
//  3. Returns when the context is canceled
//
// A subscription failure is returned as an error so the supervisor
// restarts the bridge with backoff.
func (b *BridgeService) Serve(ctx context.Context) error {
	return b.bridge.Run(ctx)
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (b *BridgeService) String() string {
	return b.name
}
