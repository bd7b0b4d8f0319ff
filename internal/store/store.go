// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

// Package store holds the server's datasets: notifications, users, products,
// and uploaded files. Everything lives in process memory so a restart (or the
// test-data reset endpoint) returns the fixture to a known state.
//
// All stores are safe for concurrent use. List operations return copies, so
// callers can never alias internal state.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/palaestra/internal/config"
	"github.com/tomtom215/palaestra/internal/logging"
)

// Store aggregates the four datasets behind one handle. api handlers and the
// test-data endpoints operate through it.
type Store struct {
	Notifications *NotificationStore
	Users         *UserStore
	Products      *ProductStore
	Files         *FileStore

	db *badger.DB
}

// New builds all datasets and seeds the defaults (users and product catalog).
// Upload content is held in an in-memory Badger instance so blobs get real
// transactional storage and native TTL without touching disk.
func New(cfg config.StoreConfig, bcryptCost int) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}

	s := &Store{
		Notifications: NewNotificationStore(cfg.MaxNotifications),
		Users:         NewUserStore(bcryptCost),
		Products:      NewProductStore(),
		Files:         NewFileStore(db, cfg.MaxUploadBytes, cfg.MaxUploads, cfg.UploadTTL),
		db:            db,
	}

	if err := s.Users.Seed(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed users: %w", err)
	}
	s.Products.Seed()

	logging.Info().
		Int("users", s.Users.Count()).
		Int("products", s.Products.Count()).
		Msg("Datasets seeded")

	return s, nil
}

// Close releases the upload storage.
func (s *Store) Close() error {
	return s.db.Close()
}
