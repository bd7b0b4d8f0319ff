// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// NotificationStore keeps notifications in arrival order with an id index.
// The slice is bounded: past maxItems the oldest entries are evicted, so a
// suite that fires thousands of toasts cannot grow the process unbounded.
type NotificationStore struct {
	mu       sync.RWMutex
	items    []models.Notification // oldest first
	byID     map[uuid.UUID]int
	maxItems int
}

// NewNotificationStore creates an empty notification store capped at maxItems.
func NewNotificationStore(maxItems int) *NotificationStore {
	return &NotificationStore{
		byID:     make(map[uuid.UUID]int),
		maxItems: maxItems,
	}
}

// Create stores a new notification from the request, assigning ID and
// CreatedAt. When the cap is reached the oldest notification is evicted.
func (s *NotificationStore) Create(req models.CreateNotificationRequest) models.Notification {
	n := models.Notification{
		ID:        uuid.New(),
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		UserID:    req.UserID,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	dropped := 0
	for len(s.items) > s.maxItems {
		s.items = s.items[1:]
		dropped++
	}
	s.reindexLocked()
	size := len(s.items)
	s.mu.Unlock()

	metrics.RecordNotificationCreated(n.Type)
	if dropped > 0 {
		metrics.RecordNotificationsDropped(dropped)
	}
	metrics.SetDatasetSize("notifications", size)

	return n
}

// Get returns the notification with the given id.
func (s *NotificationStore) Get(id uuid.UUID) (models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Notification{}, ErrNotFound
	}
	return s.items[idx], nil
}

// List returns notifications newest-first after applying the filter, along
// with the total number of matches before offset/limit.
func (s *NotificationStore) List(f models.NotificationFilter) ([]models.Notification, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Notification, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		if matchNotification(s.items[i], f) {
			matched = append(matched, s.items[i])
		}
	}

	total := len(matched)

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.Notification{}, total
	}
	matched = matched[offset:]

	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}

	return matched, total
}

// matchNotification applies every set filter field.
func matchNotification(n models.Notification, f models.NotificationFilter) bool {
	if f.Type != "" && n.Type != f.Type {
		return false
	}
	if f.Read != nil && n.Read != *f.Read {
		return false
	}
	if f.UserID != "" && n.UserID != f.UserID {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Message), q) {
			return false
		}
	}
	return true
}

// MarkRead marks a notification read and returns the updated copy. Marking
// an already-read notification is a no-op that still succeeds; ReadAt keeps
// its first value.
func (s *NotificationStore) MarkRead(id uuid.UUID) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Notification{}, ErrNotFound
	}

	if !s.items[idx].Read {
		now := time.Now().UTC()
		s.items[idx].Read = true
		s.items[idx].ReadAt = &now
	}
	return s.items[idx], nil
}

// MarkAllRead marks every unread notification read and returns how many
// changed state.
func (s *NotificationStore) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	marked := 0
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			at := now
			s.items[i].ReadAt = &at
			marked++
		}
	}
	return marked
}

// Delete removes a notification by id.
func (s *NotificationStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.reindexLocked()

	metrics.SetDatasetSize("notifications", len(s.items))
	return nil
}

// Clear removes every notification and returns how many were removed.
// Both the clear-all endpoint and the test-data reset use it.
func (s *NotificationStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.items)
	s.items = nil
	s.byID = make(map[uuid.UUID]int)

	metrics.SetDatasetSize("notifications", 0)
	return removed
}

// UnreadCount returns how many notifications are unread.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.items {
		if !s.items[i].Read {
			count++
		}
	}
	return count
}

// Len returns the current number of stored notifications.
func (s *NotificationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// SeedSamples bulk-loads n deterministic sample notifications and returns
// them. Used by the test-data seed endpoint; unlike Create it neither evicts
// nor counts as an observable create burst (no per-item events are expected
// from callers).
func (s *NotificationStore) SeedSamples(n int) []models.Notification {
	templates := []struct {
		typ, title, message string
	}{
		{models.NotificationInfo, "Deployment started", "Rolling out build to the staging cluster"},
		{models.NotificationSuccess, "Build passed", "All checks green on main"},
		{models.NotificationWarning, "Disk space low", "Volume /data is above 80% usage"},
		{models.NotificationError, "Payment failed", "Card declined for order #1042"},
		{models.NotificationInfo, "New signup", "A new user joined your workspace"},
	}

	now := time.Now().UTC()
	seeded := make([]models.Notification, 0, n)

	s.mu.Lock()
	for i := 0; i < n; i++ {
		tpl := templates[i%len(templates)]
		item := models.Notification{
			ID:      uuid.New(),
			Type:    tpl.typ,
			Title:   fmt.Sprintf("%s #%d", tpl.title, i+1),
			Message: tpl.message,
			Read:    false,
			// Spread timestamps one minute apart so newest-first ordering
			// is observable in table assertions.
			CreatedAt: now.Add(time.Duration(i-n) * time.Minute),
		}
		s.items = append(s.items, item)
		seeded = append(seeded, item)
	}
	for len(s.items) > s.maxItems {
		s.items = s.items[1:]
	}
	s.reindexLocked()
	size := len(s.items)
	s.mu.Unlock()

	metrics.SetDatasetSize("notifications", size)
	return seeded
}

// reindexLocked rebuilds the id index. Callers hold the write lock.
func (s *NotificationStore) reindexLocked() {
	s.byID = make(map[uuid.UUID]int, len(s.items))
	for i := range s.items {
		s.byID[s.items[i].ID] = i
	}
}
