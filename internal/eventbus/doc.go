// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// Package eventbus connects store mutations and feed ticks to WebSocket
// clients through an in-process Watermill gochannel Pub/Sub.
//
// Flow:
//
//	handler/store -> Publisher (circuit breaker) -> Bus -> Bridge -> hub broadcast
//
// Events travel as JSON envelopes (Event) on three topics: notifications,
// feed and testdata. The Bridge is the sole subscriber; it converts each
// envelope to the client frame format {"type": ..., "data": ...} and hands
// it to the hub. Delivery is best-effort end to end: no subscriber means
// the event is dropped, and a closed bus trips the publisher's breaker
// without failing the originating HTTP request.
package eventbus
