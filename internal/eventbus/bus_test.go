// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func TestBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig(), nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, TopicNotifications)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	msg := message.NewMessage("msg-1", []byte(`{"hello":"world"}`))
	if err := bus.Publish(TopicNotifications, msg); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	select {
	case received := <-messages:
		if received.UUID != "msg-1" {
			t.Errorf("UUID = %q, want msg-1", received.UUID)
		}
		if string(received.Payload) != `{"hello":"world"}` {
			t.Errorf("Payload = %s", received.Payload)
		}
		received.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestBus_FanOut(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig(), nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx, TopicFeed)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	second, err := bus.Subscribe(ctx, TopicFeed)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	if err := bus.Publish(TopicFeed, message.NewMessage("fan-1", []byte("tick"))); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	for i, ch := range []<-chan *message.Message{first, second} {
		select {
		case msg := <-ch:
			msg.Ack()
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d did not receive the message", i)
		}
	}
}

func TestBus_TopicIsolation(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig(), nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feedMsgs, err := bus.Subscribe(ctx, TopicFeed)
	if err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	if err := bus.Publish(TopicNotifications, message.NewMessage("n-1", []byte("x"))); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	select {
	case msg := <-feedMsgs:
		t.Errorf("feed subscriber received %q published to notifications", msg.UUID)
	case <-time.After(100 * time.Millisecond):
		// Correct: topics do not leak into each other.
	}
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig(), nil)

	if err := bus.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultBusConfig(), nil)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	err := bus.Publish(TopicNotifications, message.NewMessage("late", []byte("x")))
	if err == nil {
		t.Error("Publish after Close should error")
	}
}
