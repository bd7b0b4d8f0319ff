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
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/palaestra/internal/models"
)

// MinCost keeps the hash work negligible; production cost comes from config.
func newSeededUserStore(t *testing.T) *UserStore {
	t.Helper()
	s := NewUserStore(bcrypt.MinCost)
	if err := s.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestUserStore_SeedDefaults(t *testing.T) {
	s := newSeededUserStore(t)

	if got := s.Count(); got != 6 {
		t.Fatalf("Count() = %d, want 6 (admin + test1..test5)", got)
	}

	admin, err := s.GetByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("admin account missing: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, models.RoleAdmin)
	}

	// The browser suites log in with these exact credentials.
	u, err := s.Authenticate("test1@example.com", "password123")
	if err != nil {
		t.Fatalf("test1 credentials rejected: %v", err)
	}
	if u.Username != "test1" {
		t.Errorf("username = %q, want %q", u.Username, "test1")
	}
	if u.Role != models.RoleUser {
		t.Errorf("role = %q, want %q", u.Role, models.RoleUser)
	}

	if _, err := s.Authenticate("admin@example.com", "admin123"); err != nil {
		t.Errorf("admin credentials rejected: %v", err)
	}
}

func TestUserStore_SeedIsIdempotent(t *testing.T) {
	s := newSeededUserStore(t)

	// Drift the dataset, then reseed.
	if _, err := s.Create(models.CreateUserRequest{
		Username: "extra", Email: "extra@example.com", Password: "whatever1",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Seed(); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if got := s.Count(); got != 6 {
		t.Errorf("Count() after reseed = %d, want 6", got)
	}
	if _, err := s.GetByEmail("extra@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("extra account survived reseed, err = %v", err)
	}
	if _, err := s.Authenticate("test1@example.com", "password123"); err != nil {
		t.Errorf("test1 credentials broken after reseed: %v", err)
	}
}

func TestUserStore_Create(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.Create(models.CreateUserRequest{
		Username:  "newbie",
		Email:     "newbie@example.com",
		Password:  "s3cretpass",
		FirstName: "New",
		LastName:  "Bee",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if u.Role != models.RoleUser {
		t.Errorf("role = %q, want default %q", u.Role, models.RoleUser)
	}
	if !u.Active {
		t.Error("accounts default to active")
	}

	if _, err := s.Authenticate("newbie@example.com", "s3cretpass"); err != nil {
		t.Errorf("fresh account cannot authenticate: %v", err)
	}
}

func TestUserStore_CreateConflicts(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateUserRequest
		wantErr error
	}{
		{
			name: "duplicate email",
			req: models.CreateUserRequest{
				Username: "someone", Email: "test1@example.com", Password: "password1",
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "duplicate email different case",
			req: models.CreateUserRequest{
				Username: "someone", Email: "TEST1@EXAMPLE.COM", Password: "password1",
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "duplicate username",
			req: models.CreateUserRequest{
				Username: "test1", Email: "unique@example.com", Password: "password1",
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name: "duplicate username different case",
			req: models.CreateUserRequest{
				Username: "TEST1", Email: "unique@example.com", Password: "password1",
			},
			wantErr: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeededUserStore(t)
			if _, err := s.Create(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserStore_Authenticate(t *testing.T) {
	s := newSeededUserStore(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "test1@example.com", "password123", nil},
		{"valid email different case", "TEST1@example.com", "password123", nil},
		{"wrong password", "test1@example.com", "wrongpass", ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", "password123", ErrInvalidCredentials},
		{"empty password", "test1@example.com", "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Authenticate(tt.email, tt.password)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserStore_AuthenticateInactive(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.GetByEmail("test2@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	inactive := false
	if _, err := s.Update(u.ID, models.UpdateUserRequest{Active: &inactive}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := s.Authenticate("test2@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials (disabled accounts must not reveal state)", err)
	}
}

func TestUserStore_List(t *testing.T) {
	tests := []struct {
		name      string
		filter    models.UserFilter
		wantTotal int
		wantLen   int
		wantFirst string // username of first result, "" to skip
	}{
		{
			name:      "all in seed order",
			filter:    models.UserFilter{},
			wantTotal: 6, wantLen: 6, wantFirst: "admin",
		},
		{
			name:      "role user",
			filter:    models.UserFilter{Role: models.RoleUser},
			wantTotal: 5, wantLen: 5, wantFirst: "test1",
		},
		{
			name:      "role admin",
			filter:    models.UserFilter{Role: models.RoleAdmin},
			wantTotal: 1, wantLen: 1, wantFirst: "admin",
		},
		{
			name:      "search by username fragment",
			filter:    models.UserFilter{Search: "test"},
			wantTotal: 5, wantLen: 5,
		},
		{
			name:      "search by last name",
			filter:    models.UserFilter{Search: "userthree"},
			wantTotal: 1, wantLen: 1, wantFirst: "test3",
		},
		{
			name:      "sort username desc",
			filter:    models.UserFilter{SortBy: "username", SortOrder: "desc"},
			wantTotal: 6, wantLen: 6, wantFirst: "test5",
		},
		{
			name:      "paging",
			filter:    models.UserFilter{Page: 2, Limit: 4},
			wantTotal: 6, wantLen: 2, wantFirst: "test4",
		},
		{
			name:      "page past end",
			filter:    models.UserFilter{Page: 5, Limit: 4},
			wantTotal: 6, wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSeededUserStore(t)

			users, total := s.List(tt.filter)
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(users) != tt.wantLen {
				t.Errorf("len(users) = %d, want %d", len(users), tt.wantLen)
			}
			if tt.wantFirst != "" && len(users) > 0 && users[0].Username != tt.wantFirst {
				t.Errorf("users[0].Username = %q, want %q", users[0].Username, tt.wantFirst)
			}
		})
	}
}

func TestUserStore_Update(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.GetByEmail("test1@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	newFirst := "Renamed"
	updated, err := s.Update(u.ID, models.UpdateUserRequest{FirstName: &newFirst})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Renamed" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "Renamed")
	}
	if updated.Email != "test1@example.com" {
		t.Errorf("untouched field changed: email = %q", updated.Email)
	}

	if _, err := s.Update(uuid.New(), models.UpdateUserRequest{FirstName: &newFirst}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUserStore_UpdateEmailReindexes(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.GetByEmail("test1@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	newEmail := "renamed@example.com"
	if _, err := s.Update(u.ID, models.UpdateUserRequest{Email: &newEmail}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.GetByEmail("renamed@example.com"); err != nil {
		t.Errorf("new email not indexed: %v", err)
	}
	if _, err := s.GetByEmail("test1@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old email still indexed, err = %v", err)
	}

	// Password is untouched by a profile update.
	if _, err := s.Authenticate("renamed@example.com", "password123"); err != nil {
		t.Errorf("authenticate after email change: %v", err)
	}
}

func TestUserStore_UpdateConflicts(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.GetByEmail("test1@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	takenEmail := "test2@example.com"
	if _, err := s.Update(u.ID, models.UpdateUserRequest{Email: &takenEmail}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}

	takenName := "test2"
	if _, err := s.Update(u.ID, models.UpdateUserRequest{Username: &takenName}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}

	// Setting a field to its current value is not a conflict.
	ownEmail := "test1@example.com"
	if _, err := s.Update(u.ID, models.UpdateUserRequest{Email: &ownEmail}); err != nil {
		t.Errorf("self-update rejected: %v", err)
	}
}

func TestUserStore_Delete(t *testing.T) {
	s := newSeededUserStore(t)

	u, err := s.GetByEmail("test5@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := s.Delete(u.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	if _, err := s.GetByEmail("test5@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted account still indexed, err = %v", err)
	}
	if _, err := s.Authenticate("test5@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("deleted account still authenticates, err = %v", err)
	}

	if err := s.Delete(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUserStore_Reset(t *testing.T) {
	s := newSeededUserStore(t)

	removed := s.Reset()
	if removed != 6 {
		t.Errorf("Reset() = %d, want 6", removed)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if _, err := s.Authenticate("test1@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials after reset", err)
	}
}

func TestUserStore_ConcurrentAccess(t *testing.T) {
	s := newSeededUserStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.Create(models.CreateUserRequest{
					Username: fmt.Sprintf("worker%d_%d", n, j),
					Email:    fmt.Sprintf("worker%d_%d@example.com", n, j),
					Password: "password1",
				})
				s.List(models.UserFilter{Limit: 5})
				s.GetByEmail("test1@example.com")
				s.Count()
			}
		}(i)
	}
	wg.Wait()

	if got := s.Count(); got != 6+50*20 {
		t.Errorf("Count() = %d, want %d", got, 6+50*20)
	}
}
