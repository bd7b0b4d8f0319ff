// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package eventbus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/palaestra/internal/metrics"
)

// Broadcaster is the WebSocket side of the bridge. Implemented by the hub;
// kept as an interface so bridge tests run without real connections.
type Broadcaster interface {
	// BroadcastRaw sends raw JSON bytes to all connected clients.
	BroadcastRaw(data []byte)
}

// clientMessage is the frame format WebSocket clients receive.
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Bridge subscribes to every bus topic and re-broadcasts events to WebSocket
// clients. It is the only consumer the bus needs: REST reads go straight to
// the stores, the bridge exists so mutations reach connected browsers live.
type Bridge struct {
	bus    *Bus
	hub    Broadcaster
	topics []string
	logger watermill.LoggerAdapter

	running     chan struct{}
	runningOnce sync.Once

	messagesReceived  atomic.Int64
	messagesBroadcast atomic.Int64
	decodeErrors      atomic.Int64
}

// NewBridge creates a bridge from the bus to the hub.
func NewBridge(bus *Bus, hub Broadcaster, logger watermill.LoggerAdapter) (*Bridge, error) {
	if bus == nil {
		return nil, fmt.Errorf("bus required")
	}
	if hub == nil {
		return nil, fmt.Errorf("hub required")
	}
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	return &Bridge{
		bus:     bus,
		hub:     hub,
		topics:  []string{TopicNotifications, TopicFeed, TopicTestData},
		logger:  logger,
		running: make(chan struct{}),
	}, nil
}

// Running returns a channel that closes once all topic subscriptions are
// active. Events published before that point are not delivered.
func (b *Bridge) Running() <-chan struct{} {
	return b.running
}

// Run subscribes to all topics and forwards events until the context is
// canceled. Implements suture.Service.
func (b *Bridge) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for _, topic := range b.topics {
		messages, err := b.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, messages <-chan *message.Message) {
			defer wg.Done()
			b.consume(ctx, topic, messages)
		}(topic, messages)
	}

	b.runningOnce.Do(func() { close(b.running) })
	b.logger.Info("Bridge started", watermill.LogFields{
		"topics": len(b.topics),
	})

	wg.Wait()
	return ctx.Err()
}

// consume drains one topic until the context is canceled or the bus closes
// the channel.
func (b *Bridge) consume(ctx context.Context, topic string, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			b.forward(topic, msg)
			// Always ack: a frame that failed to decode will not decode on
			// redelivery either, and broadcast itself cannot fail.
			msg.Ack()
		}
	}
}

// forward unwraps the bus envelope and broadcasts it as a client frame.
func (b *Bridge) forward(topic string, msg *message.Message) {
	b.messagesReceived.Add(1)

	event, err := ParseEvent(msg.Payload)
	if err != nil {
		b.decodeErrors.Add(1)
		b.logger.Error("Dropping undecodable bus message", err, watermill.LogFields{
			"message_uuid": msg.UUID,
			"topic":        topic,
		})
		return
	}

	frame, err := json.Marshal(clientMessage{Type: event.Type, Data: event.Payload})
	if err != nil {
		b.decodeErrors.Add(1)
		b.logger.Error("Dropping unencodable client frame", err, watermill.LogFields{
			"message_uuid": msg.UUID,
			"topic":        topic,
		})
		return
	}

	b.hub.BroadcastRaw(frame)
	b.messagesBroadcast.Add(1)
	metrics.RecordBusDelivery(topic)
}

// Stats returns current bridge counters.
func (b *Bridge) Stats() BridgeStats {
	return BridgeStats{
		MessagesReceived:  b.messagesReceived.Load(),
		MessagesBroadcast: b.messagesBroadcast.Load(),
		DecodeErrors:      b.decodeErrors.Load(),
	}
}

// BridgeStats holds runtime statistics.
type BridgeStats struct {
	MessagesReceived  int64
	MessagesBroadcast int64
	DecodeErrors      int64
}
