// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package websocket provides real-time bidirectional communication for live updates.

This package implements WebSocket support for broadcasting notification
lifecycle events, live feed samples, and test-data lifecycle events to
connected browser clients. It uses the gorilla/websocket library with a
hub-client architecture for efficient message broadcasting.

Key Components:

  - Hub: Central message broker that manages client connections and broadcasts
  - Client: Represents a single WebSocket connection with read/write goroutines
  - Message: Typed message structure for different event types

Architecture:

The package implements a hub-and-spoke pattern:

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│          │         │         │
	│ Client1  │ Client2 │ Client3 │ Client4
	│          │         │         │
	└──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Reads from WebSocket, handles pings, enforces the inbound rate budget
  - writePump: Writes to WebSocket, sends protocol pings

Message Types:

Server-to-client types mirror the event bus topics 1:1:

  - notification_created: A notification was created (full notification payload)
  - notification_read: A single notification was marked read
  - notifications_marked_read: A bulk mark-read completed (count)
  - notification_deleted: A notification was deleted (id)
  - notifications_cleared: All notifications were cleared (count)
  - feed_sample: A live feed channel produced a new sample
  - test_data_reset: The test-data reset endpoint ran (counts)
  - test_data_seeded: A seed dataset was loaded (dataset, count)
  - connected: Greeting sent to a client right after registration
  - pong: Reply to a client-sent ping

Ordering:

Broadcasts are delivered to clients sorted by their registration ID, so a
test suite driving two browsers sees events in the same relative order on
both sockets. Clients whose send buffer is full at broadcast time are
dropped rather than allowed to stall everyone else.

Usage Example - Server:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	// The event bus bridge forwards pre-encoded frames:
	hub.BroadcastRaw(frame)

	// Direct typed broadcast is also available:
	hub.BroadcastJSON(websocket.MessageTypeNotificationsCleared, payload)

Usage Example - Client (JavaScript):

	const ws = new WebSocket('ws://localhost:3001/ws');

	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);

	    if (msg.type === 'notification_created') {
	        showToast(msg.data.title);
	    }

	    if (msg.type === 'feed_sample') {
	        updateChart(msg.data.channel, msg.data.value);
	    }
	};

Connection Lifecycle:

1. Client connects via HTTP upgrade (see internal/api)
2. Hub registers client and sends the connected greeting
3. Client starts read/write goroutines
4. Hub broadcasts messages to all clients
5. Client disconnects (network error or explicit close)
6. Hub unregisters client and cleans up

Thread Safety:

The package is fully thread-safe:
  - Hub uses mutex for client map access
  - Channels coordinate goroutine communication
  - Each client has separate read/write goroutines
  - No shared mutable state between clients

Configuration:

WebSocket settings:
  - writeWait: 10 seconds (time allowed to write message)
  - pongWait: 60 seconds (time allowed to read pong)
  - pingPeriod: 54 seconds (ping interval, must be < pongWait)
  - maxMessageSize: 512 KB (max inbound message size)
  - inbound budget: 10 messages/second with burst of 20 per client

See Also:

  - github.com/gorilla/websocket: Underlying WebSocket library
  - internal/api: WebSocket endpoint handler
  - internal/eventbus: Source of broadcast frames
*/
package websocket
