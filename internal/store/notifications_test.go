// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/models"
)

func newNotificationFixture(t *testing.T) *NotificationStore {
	t.Helper()
	s := NewNotificationStore(100)

	// Insertion order; List returns the reverse.
	fixtures := []models.CreateNotificationRequest{
		{Type: "info", Title: "Deploy started", Message: "pipeline run 42"},
		{Type: "success", Title: "Build passed", Message: "all tests green", UserID: "u1"},
		{Type: "warning", Title: "Disk low", Message: "volume /data at 91%"},
		{Type: "error", Title: "Payment failed", Message: "card declined", UserID: "u1"},
		{Type: "info", Title: "Welcome", Message: "new signup: björn", UserID: "u2"},
	}
	for _, f := range fixtures {
		s.Create(f)
	}
	return s
}

func TestNotificationStore_Create(t *testing.T) {
	s := NewNotificationStore(10)

	n := s.Create(models.CreateNotificationRequest{
		Type:    "info",
		Title:   "Hello",
		Message: "first one",
	})

	if n.ID == uuid.Nil {
		t.Error("expected a generated ID")
	}
	if n.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if n.Read {
		t.Error("new notifications must start unread")
	}
	if n.ReadAt != nil {
		t.Error("new notifications must have nil ReadAt")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestNotificationStore_CreateEvictsOldest(t *testing.T) {
	s := NewNotificationStore(3)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		n := s.Create(models.CreateNotificationRequest{
			Type:  "info",
			Title: fmt.Sprintf("item %d", i),
		})
		ids = append(ids, n.ID)
	}

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	// The two oldest are gone.
	for _, id := range ids[:2] {
		if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%s) err = %v, want ErrNotFound", id, err)
		}
	}
	// The three newest survive.
	for _, id := range ids[2:] {
		if _, err := s.Get(id); err != nil {
			t.Errorf("Get(%s) unexpected error: %v", id, err)
		}
	}
}

func TestNotificationStore_Get(t *testing.T) {
	s := NewNotificationStore(10)
	created := s.Create(models.CreateNotificationRequest{Type: "info", Title: "A"})

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "A" {
		t.Errorf("Title = %q, want %q", got.Title, "A")
	}

	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationStore_List_NewestFirst(t *testing.T) {
	s := newNotificationFixture(t)

	items, total := s.List(models.NotificationFilter{})
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	if items[0].Title != "Welcome" {
		t.Errorf("items[0].Title = %q, want %q (newest first)", items[0].Title, "Welcome")
	}
	if items[4].Title != "Deploy started" {
		t.Errorf("items[4].Title = %q, want %q (oldest last)", items[4].Title, "Deploy started")
	}
}

func TestNotificationStore_List_Filters(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name       string
		filter     models.NotificationFilter
		wantTotal  int
		wantLen    int
		wantFirsts string // title of first returned item, "" to skip
	}{
		{
			name:      "no filter",
			filter:    models.NotificationFilter{},
			wantTotal: 5, wantLen: 5, wantFirsts: "Welcome",
		},
		{
			name:      "type info",
			filter:    models.NotificationFilter{Type: "info"},
			wantTotal: 2, wantLen: 2, wantFirsts: "Welcome",
		},
		{
			name:      "type error",
			filter:    models.NotificationFilter{Type: "error"},
			wantTotal: 1, wantLen: 1, wantFirsts: "Payment failed",
		},
		{
			name:      "unread only",
			filter:    models.NotificationFilter{Read: boolPtr(false)},
			wantTotal: 5, wantLen: 5,
		},
		{
			name:      "read only",
			filter:    models.NotificationFilter{Read: boolPtr(true)},
			wantTotal: 0, wantLen: 0,
		},
		{
			name:      "user filter",
			filter:    models.NotificationFilter{UserID: "u1"},
			wantTotal: 2, wantLen: 2, wantFirsts: "Payment failed",
		},
		{
			name:      "search title case-insensitive",
			filter:    models.NotificationFilter{Search: "DISK"},
			wantTotal: 1, wantLen: 1, wantFirsts: "Disk low",
		},
		{
			name:      "search message",
			filter:    models.NotificationFilter{Search: "tests green"},
			wantTotal: 1, wantLen: 1, wantFirsts: "Build passed",
		},
		{
			name:      "search no match",
			filter:    models.NotificationFilter{Search: "nothing here"},
			wantTotal: 0, wantLen: 0,
		},
		{
			name:      "offset and limit",
			filter:    models.NotificationFilter{Offset: 2, Limit: 2},
			wantTotal: 5, wantLen: 2, wantFirsts: "Disk low",
		},
		{
			name:      "offset past end",
			filter:    models.NotificationFilter{Offset: 10},
			wantTotal: 5, wantLen: 0,
		},
		{
			name:      "zero limit returns all remaining",
			filter:    models.NotificationFilter{Offset: 1, Limit: 0},
			wantTotal: 5, wantLen: 4, wantFirsts: "Payment failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newNotificationFixture(t)

			items, total := s.List(tt.filter)
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(items) != tt.wantLen {
				t.Errorf("len(items) = %d, want %d", len(items), tt.wantLen)
			}
			if tt.wantFirsts != "" && len(items) > 0 && items[0].Title != tt.wantFirsts {
				t.Errorf("items[0].Title = %q, want %q", items[0].Title, tt.wantFirsts)
			}
		})
	}
}

func TestNotificationStore_MarkRead(t *testing.T) {
	s := NewNotificationStore(10)
	created := s.Create(models.CreateNotificationRequest{Type: "info", Title: "A"})

	updated, err := s.MarkRead(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Read {
		t.Error("expected Read = true")
	}
	if updated.ReadAt == nil {
		t.Fatal("expected ReadAt to be set")
	}

	// Idempotent: marking again keeps the original ReadAt.
	first := *updated.ReadAt
	again, err := s.MarkRead(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ReadAt == nil || !again.ReadAt.Equal(first) {
		t.Error("second MarkRead must not change ReadAt")
	}

	if _, err := s.MarkRead(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationStore_MarkAllRead(t *testing.T) {
	s := newNotificationFixture(t)

	items, _ := s.List(models.NotificationFilter{})
	if _, err := s.MarkRead(items[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	marked := s.MarkAllRead()
	if marked != 4 {
		t.Errorf("MarkAllRead() = %d, want 4 (one was already read)", marked)
	}
	if s.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0", s.UnreadCount())
	}

	// Nothing left to mark.
	if marked := s.MarkAllRead(); marked != 0 {
		t.Errorf("second MarkAllRead() = %d, want 0", marked)
	}
}

func TestNotificationStore_Delete(t *testing.T) {
	s := newNotificationFixture(t)
	items, _ := s.List(models.NotificationFilter{})

	if err := s.Delete(items[2].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if _, err := s.Get(items[2].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted item still retrievable, err = %v", err)
	}

	// Remaining items keep their order.
	after, _ := s.List(models.NotificationFilter{})
	if after[0].Title != "Welcome" || after[3].Title != "Deploy started" {
		t.Error("delete disturbed list order")
	}

	if err := s.Delete(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationStore_Clear(t *testing.T) {
	s := newNotificationFixture(t)

	removed := s.Clear()
	if removed != 5 {
		t.Errorf("Clear() = %d, want 5", removed)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	if removed := s.Clear(); removed != 0 {
		t.Errorf("second Clear() = %d, want 0", removed)
	}
}

func TestNotificationStore_UnreadCount(t *testing.T) {
	s := newNotificationFixture(t)

	if got := s.UnreadCount(); got != 5 {
		t.Fatalf("UnreadCount() = %d, want 5", got)
	}

	items, _ := s.List(models.NotificationFilter{})
	if _, err := s.MarkRead(items[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.UnreadCount(); got != 4 {
		t.Errorf("UnreadCount() = %d, want 4", got)
	}
}

func TestNotificationStore_SeedSamples(t *testing.T) {
	s := NewNotificationStore(100)

	seeded := s.SeedSamples(10)
	if len(seeded) != 10 {
		t.Fatalf("len(seeded) = %d, want 10", len(seeded))
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}

	for _, n := range seeded {
		if !models.IsValidNotificationType(n.Type) {
			t.Errorf("seeded type %q is not a valid notification type", n.Type)
		}
		if n.Title == "" {
			t.Error("seeded notification has empty title")
		}
	}

	// Seeded timestamps are spaced so List order is observable.
	items, _ := s.List(models.NotificationFilter{})
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Fatalf("items[%d] is newer than items[%d]; list must be newest first", i, i-1)
		}
	}
}

func TestNotificationStore_SeedSamplesRespectsCap(t *testing.T) {
	s := NewNotificationStore(5)

	s.SeedSamples(20)
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5 (seed must honor the ring cap)", s.Len())
	}
}

func TestNotificationStore_ConcurrentAccess(t *testing.T) {
	s := NewNotificationStore(500)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				created := s.Create(models.CreateNotificationRequest{
					Type:  "info",
					Title: fmt.Sprintf("worker %d item %d", n, j),
				})
				s.Get(created.ID)
				s.List(models.NotificationFilter{Limit: 10})
				s.MarkRead(created.ID)
				if j%10 == 0 {
					s.Delete(created.ID)
				}
			}
		}(i)
	}
	wg.Wait()

	if s.Len() > 500 {
		t.Errorf("Len() = %d, must not exceed the cap", s.Len())
	}
}

func BenchmarkNotificationStore_Create(b *testing.B) {
	s := NewNotificationStore(500)
	req := models.CreateNotificationRequest{Type: "info", Title: "bench", Message: "payload"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Create(req)
	}
}

func BenchmarkNotificationStore_List(b *testing.B) {
	s := NewNotificationStore(500)
	for i := 0; i < 500; i++ {
		s.Create(models.CreateNotificationRequest{Type: "info", Title: fmt.Sprintf("item %d", i)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.List(models.NotificationFilter{Limit: 20})
	}
}
