// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// seedEpoch anchors seeded CreatedAt values so created_at sorting is stable
// across reseeds.
var seedEpoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

// userRecord pairs the public user shape with its password hash. The hash
// never leaves the store.
type userRecord struct {
	user         models.User
	passwordHash []byte
}

// UserStore keeps accounts indexed by id, lowercase email, and lowercase
// username. Login tests depend on the seeded defaults, so Seed restores the
// exact same account set every time.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*userRecord
	byEmail    map[string]uuid.UUID
	byUsername map[string]uuid.UUID
	bcryptCost int

	// dummyHash burns a bcrypt compare on unknown emails so response timing
	// does not reveal whether an account exists.
	dummyHash []byte
}

// NewUserStore creates an empty user store hashing passwords at the given cost.
func NewUserStore(bcryptCost int) *UserStore {
	dummy, err := bcrypt.GenerateFromPassword([]byte("palaestra-timing-pad"), bcryptCost)
	if err != nil {
		// Only reachable with a cost outside bcrypt's bounds, which config
		// validation already rejects.
		panic(err)
	}

	return &UserStore{
		byID:       make(map[uuid.UUID]*userRecord),
		byEmail:    make(map[string]uuid.UUID),
		byUsername: make(map[string]uuid.UUID),
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Create adds a new account. Email and username conflicts are checked
// case-insensitively.
func (s *UserStore) Create(req models.CreateUserRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user := models.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Active:    active,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[strings.ToLower(user.Email)]; exists {
		return models.User{}, ErrEmailTaken
	}
	if _, exists := s.byUsername[strings.ToLower(user.Username)]; exists {
		return models.User{}, ErrUsernameTaken
	}

	s.insertLocked(&userRecord{user: user, passwordHash: hash})
	metrics.SetDatasetSize("users", len(s.byID))

	return user, nil
}

// GetByID returns the account with the given id.
func (s *UserStore) GetByID(id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return rec.user, nil
}

// GetByEmail returns the account with the given email, case-insensitively.
func (s *UserStore) GetByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.byID[id].user, nil
}

// Authenticate verifies an email/password pair. Unknown emails, wrong
// passwords, and deactivated accounts all return ErrInvalidCredentials.
func (s *UserStore) Authenticate(email, password string) (models.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(email)]
	var rec *userRecord
	if ok {
		rec = s.byID[id]
	}
	s.mu.RUnlock()

	if rec == nil {
		// Equalize timing with the found-account path.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !rec.user.Active {
		return models.User{}, ErrInvalidCredentials
	}

	return rec.user, nil
}

// List returns accounts after filter, sort, and pagination, with the total
// match count before paging.
func (s *UserStore) List(f models.UserFilter) ([]models.User, int) {
	s.mu.RLock()
	matched := make([]models.User, 0, len(s.byID))
	for _, rec := range s.byID {
		if matchUser(rec.user, f) {
			matched = append(matched, rec.user)
		}
	}
	s.mu.RUnlock()

	sortUsers(matched, f.SortBy, f.SortOrder)

	total := len(matched)
	return pageSlice(matched, f.Page, f.Limit), total
}

// matchUser applies every set filter field.
func matchUser(u models.User, f models.UserFilter) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.FirstName), q) &&
			!strings.Contains(strings.ToLower(u.LastName), q) {
			return false
		}
	}
	return true
}

// sortUsers orders accounts by the requested column. Ties fall back to
// username so the order is total and table assertions never flake.
func sortUsers(users []models.User, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	less := func(a, b models.User) bool {
		switch sortBy {
		case "username":
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case "role":
			if a.Role != b.Role {
				return a.Role < b.Role
			}
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		default: // created_at
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}

// Update applies the non-nil fields of the request and returns the updated
// account. Email and username changes are conflict-checked against other
// accounts.
func (s *UserStore) Update(id uuid.UUID, req models.UpdateUserRequest) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if req.Email != nil {
		key := strings.ToLower(*req.Email)
		if other, exists := s.byEmail[key]; exists && other != id {
			return models.User{}, ErrEmailTaken
		}
	}
	if req.Username != nil {
		key := strings.ToLower(*req.Username)
		if other, exists := s.byUsername[key]; exists && other != id {
			return models.User{}, ErrUsernameTaken
		}
	}

	if req.Email != nil {
		delete(s.byEmail, strings.ToLower(rec.user.Email))
		rec.user.Email = *req.Email
		s.byEmail[strings.ToLower(rec.user.Email)] = id
	}
	if req.Username != nil {
		delete(s.byUsername, strings.ToLower(rec.user.Username))
		rec.user.Username = *req.Username
		s.byUsername[strings.ToLower(rec.user.Username)] = id
	}
	if req.FirstName != nil {
		rec.user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		rec.user.LastName = *req.LastName
	}
	if req.Role != nil {
		rec.user.Role = *req.Role
	}
	if req.Active != nil {
		rec.user.Active = *req.Active
	}

	return rec.user, nil
}

// Delete removes an account by id.
func (s *UserStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byID, id)
	delete(s.byEmail, strings.ToLower(rec.user.Email))
	delete(s.byUsername, strings.ToLower(rec.user.Username))

	metrics.SetDatasetSize("users", len(s.byID))
	return nil
}

// Count returns the current number of accounts.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Reset removes every account and returns how many were removed. It does
// not reseed: test harnesses call the seed endpoint separately when they
// want the default accounts back.
func (s *UserStore) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.byID)
	s.clearLocked()

	metrics.SetDatasetSize("users", 0)
	return removed
}

// defaultUsers describes the seeded account set. The Selenium suites log in
// as test1@example.com / password123, so these exact credentials are part of
// the server's contract.
var defaultUsers = []struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
	role      string
}{
	{"admin", "admin@example.com", "admin123", "Admin", "User", models.RoleAdmin},
	{"test1", "test1@example.com", "password123", "Test", "UserOne", models.RoleUser},
	{"test2", "test2@example.com", "password123", "Test", "UserTwo", models.RoleUser},
	{"test3", "test3@example.com", "password123", "Test", "UserThree", models.RoleUser},
	{"test4", "test4@example.com", "password123", "Test", "UserFour", models.RoleUser},
	{"test5", "test5@example.com", "password123", "Test", "UserFive", models.RoleUser},
}

// Seed replaces all accounts with the deterministic defaults. Idempotent:
// seeding twice yields the same account set.
func (s *UserStore) Seed() error {
	records := make([]*userRecord, 0, len(defaultUsers))
	for i, du := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(du.password), s.bcryptCost)
		if err != nil {
			return err
		}
		records = append(records, &userRecord{
			user: models.User{
				ID:        uuid.New(),
				Username:  du.username,
				Email:     du.email,
				FirstName: du.firstName,
				LastName:  du.lastName,
				Role:      du.role,
				Active:    true,
				CreatedAt: seedEpoch.Add(time.Duration(i) * time.Hour),
			},
			passwordHash: hash,
		})
	}

	s.mu.Lock()
	s.clearLocked()
	for _, rec := range records {
		s.insertLocked(rec)
	}
	size := len(s.byID)
	s.mu.Unlock()

	metrics.SetDatasetSize("users", size)
	return nil
}

// insertLocked adds a record to all indexes. Callers hold the write lock.
func (s *UserStore) insertLocked(rec *userRecord) {
	s.byID[rec.user.ID] = rec
	s.byEmail[strings.ToLower(rec.user.Email)] = rec.user.ID
	s.byUsername[strings.ToLower(rec.user.Username)] = rec.user.ID
}

// clearLocked empties all indexes. Callers hold the write lock.
func (s *UserStore) clearLocked() {
	s.byID = make(map[uuid.UUID]*userRecord)
	s.byEmail = make(map[string]uuid.UUID)
	s.byUsername = make(map[string]uuid.UUID)
}

// pageSlice applies 1-based page/limit windowing shared by the list stores.
func pageSlice[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
