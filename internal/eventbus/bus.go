// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package eventbus

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// BusConfig holds tuning knobs for the in-process bus.
type BusConfig struct {
	// BufferSize is the per-subscriber output channel buffer. A slow
	// subscriber stalls publishers once its buffer fills, so this is sized
	// to absorb broadcast bursts (test-data reset fires several events
	// back to back).
	BufferSize int64
}

// DefaultBusConfig returns production defaults.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		BufferSize: 256,
	}
}

// Bus is the in-process event bus connecting stores and the feed generator to
// the WebSocket bridge. It wraps a Watermill gochannel Pub/Sub: messages are
// delivered to every active subscriber of a topic, and are dropped when no
// subscriber is listening (broadcast is best-effort).
type Bus struct {
	pubSub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates an in-process bus.
func NewBus(cfg BusConfig, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
		// Not persistent: a subscriber joining late must not replay history,
		// WebSocket clients get current state from the REST API instead.
		Persistent: false,
	}, logger)

	return &Bus{
		pubSub: pubSub,
		logger: logger,
	}
}

// Publish sends a message to the given topic. Returns an error after Close.
func (b *Bus) Publish(topic string, msg *message.Message) error {
	return b.pubSub.Publish(topic, msg)
}

// Subscribe returns a channel of messages for the given topic. The channel is
// closed when the context is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Close shuts the bus down and closes all subscriber channels. Safe to call
// more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.pubSub.Close()
}
