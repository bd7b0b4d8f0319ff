// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package eventbus

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/models"
)

// Bus topics. The gochannel transport has no wildcard subscribe, so every
// consumer names the topics it wants and the bridge fans in all of them.
const (
	TopicNotifications = "notifications"
	TopicFeed          = "feed"
	TopicTestData      = "testdata"
)

// Event types. Each maps 1:1 to the WebSocket message type broadcast to
// connected clients, so renaming one here is a breaking protocol change.
const (
	EventNotificationCreated     = "notification_created"
	EventNotificationRead        = "notification_read"
	EventNotificationsMarkedRead = "notifications_marked_read"
	EventNotificationDeleted     = "notification_deleted"
	EventNotificationsCleared    = "notifications_cleared"
	EventFeedSample              = "feed_sample"
	EventTestDataReset           = "test_data_reset"
	EventTestDataSeeded          = "test_data_seeded"
)

// Event is the canonical envelope published on the bus. Payload holds the
// type-specific body pre-encoded, so the bridge can forward it to WebSocket
// clients without a decode/encode round trip.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// CountPayload is the body of events that report how many items an operation
// touched (notifications_marked_read, notifications_cleared).
type CountPayload struct {
	Count int `json:"count"`
}

// DeletedPayload is the body of notification_deleted.
type DeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// SeedPayload is the body of test_data_seeded.
type SeedPayload struct {
	Dataset string `json:"dataset"`
	Count   int    `json:"count"`
}

// newEvent builds an envelope around a marshaled payload.
func newEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

// NewNotificationCreated wraps a freshly stored notification.
func NewNotificationCreated(n models.Notification) (Event, error) {
	return newEvent(EventNotificationCreated, n)
}

// NewNotificationRead wraps a notification after it was marked read.
func NewNotificationRead(n models.Notification) (Event, error) {
	return newEvent(EventNotificationRead, n)
}

// NewNotificationsMarkedRead reports a bulk mark-read and how many
// notifications it flipped.
func NewNotificationsMarkedRead(count int) (Event, error) {
	return newEvent(EventNotificationsMarkedRead, CountPayload{Count: count})
}

// NewNotificationDeleted reports a single deletion by id.
func NewNotificationDeleted(id uuid.UUID) (Event, error) {
	return newEvent(EventNotificationDeleted, DeletedPayload{ID: id})
}

// NewNotificationsCleared reports a clear-all and how many notifications
// it removed.
func NewNotificationsCleared(count int) (Event, error) {
	return newEvent(EventNotificationsCleared, CountPayload{Count: count})
}

// NewFeedSample wraps one tick of a real-time feed channel.
func NewFeedSample(s models.FeedSample) (Event, error) {
	return newEvent(EventFeedSample, s)
}

// NewTestDataReset reports a full test-data reset and the per-dataset counts
// it cleared.
func NewTestDataReset(counts models.ResetResponse) (Event, error) {
	return newEvent(EventTestDataReset, counts)
}

// NewTestDataSeeded reports a dataset seed operation.
func NewTestDataSeeded(dataset string, count int) (Event, error) {
	return newEvent(EventTestDataSeeded, SeedPayload{Dataset: dataset, Count: count})
}

// Topic returns the bus topic this event is published on.
func (e *Event) Topic() string {
	switch e.Type {
	case EventFeedSample:
		return TopicFeed
	case EventTestDataReset, EventTestDataSeeded:
		return TopicTestData
	default:
		return TopicNotifications
	}
}

// Validate checks the fields every well-formed envelope must carry.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id required")
	}
	if e.Type == "" {
		return fmt.Errorf("event type required")
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("event timestamp required")
	}
	return nil
}

// Marshal converts the event to JSON bytes for the wire.
func (e *Event) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	return data, nil
}

// Message converts the event to a Watermill message. The event id doubles as
// the message UUID so bus logs and delivery traces line up.
func (e *Event) Message() (*message.Message, error) {
	data, err := e.Marshal()
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(e.ID, data)
	msg.Metadata.Set("event_type", e.Type)
	return msg, nil
}

// ParseEvent converts JSON bytes back to an event envelope.
func ParseEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
