// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// Key prefix for file content in BadgerDB.
const fileKeyPrefix = "file:"

// FileStore holds uploaded file content in the in-memory BadgerDB and the
// metadata in a map guarded by a mutex. The metadata map is the ordering
// authority (List returns upload order); Badger is the liveness authority
// when a TTL is configured, because it drops expired entries on its own.
type FileStore struct {
	mu    sync.Mutex
	db    *badger.DB
	byID  map[uuid.UUID]models.FileInfo
	order []uuid.UUID

	maxBytes   int64
	maxUploads int
	ttl        time.Duration
}

// NewFileStore creates a file store backed by the given BadgerDB instance.
// A ttl of zero means uploads never expire.
func NewFileStore(db *badger.DB, maxBytes int64, maxUploads int, ttl time.Duration) *FileStore {
	return &FileStore{
		db:         db,
		byID:       make(map[uuid.UUID]models.FileInfo),
		maxBytes:   maxBytes,
		maxUploads: maxUploads,
		ttl:        ttl,
	}
}

// Put stores an upload and returns its metadata. Content larger than the
// configured byte limit is rejected with ErrFileTooLarge; once the upload
// count limit is reached, ErrStoreFull.
func (s *FileStore) Put(name, contentType string, content []byte) (models.FileInfo, error) {
	size := int64(len(content))
	if size > s.maxBytes {
		metrics.RecordUploadRejected("too_large")
		return models.FileInfo{}, ErrFileTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()

	if s.maxUploads > 0 && len(s.byID) >= s.maxUploads {
		metrics.RecordUploadRejected("store_full")
		return models.FileInfo{}, ErrStoreFull
	}

	now := time.Now().UTC()
	info := models.FileInfo{
		ID:          uuid.New(),
		Name:        name,
		Size:        size,
		ContentType: contentType,
		UploadedAt:  now,
	}
	if s.ttl > 0 {
		expires := now.Add(s.ttl)
		info.ExpiresAt = &expires
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(fileKeyPrefix + info.ID.String())
		entry := badger.NewEntry(key, content)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return models.FileInfo{}, fmt.Errorf("store file content: %w", err)
	}

	s.byID[info.ID] = info
	s.order = append(s.order, info.ID)

	metrics.RecordUpload(size)
	metrics.SetDatasetSize("files", len(s.byID))
	return info, nil
}

// Get returns the metadata for an upload.
func (s *FileStore) Get(id uuid.UUID) (models.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.byID[id]
	if !ok || expired(info) {
		return models.FileInfo{}, ErrNotFound
	}
	return info, nil
}

// Content returns the stored bytes for an upload. Expired entries are
// reported as not found even before the metadata prune notices them,
// because Badger drops the content first.
func (s *FileStore) Content(id uuid.UUID) (models.FileInfo, []byte, error) {
	info, err := s.Get(id)
	if err != nil {
		return models.FileInfo{}, nil, err
	}

	var content []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fileKeyPrefix + id.String()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get file content: %w", err)
		}

		content, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return models.FileInfo{}, nil, err
	}

	return info, content, nil
}

// List returns all uploads in upload order.
func (s *FileStore) List() []models.FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()

	out := make([]models.FileInfo, 0, len(s.order))
	for _, id := range s.order {
		if info, ok := s.byID[id]; ok {
			out = append(out, info)
		}
	}
	return out
}

// Delete removes an upload and its content.
func (s *FileStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(fileKeyPrefix + id.String())
		if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete file content: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeLocked(id)
	metrics.SetDatasetSize("files", len(s.byID))
	return nil
}

// Count returns the number of live uploads.
func (s *FileStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneExpiredLocked()
	return len(s.byID)
}

// PruneExpired drops metadata for uploads whose TTL has lapsed and reports
// how many were removed. Badger already expired the content on its own; this
// keeps the metadata map and the dataset gauge honest between requests. The
// janitor service calls it on a timer.
func (s *FileStore) PruneExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.byID)
	s.pruneExpiredLocked()
	removed := before - len(s.byID)
	if removed > 0 {
		metrics.SetDatasetSize("files", len(s.byID))
	}
	return removed
}

// Reset drops every upload and reports how many were removed.
func (s *FileStore) Reset() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Collect keys first, then delete; Badger iterators must not observe
	// their own transaction's deletes.
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan files: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete file content: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := len(s.byID)
	s.byID = make(map[uuid.UUID]models.FileInfo)
	s.order = nil

	metrics.SetDatasetSize("files", 0)
	return removed, nil
}

// pruneExpiredLocked drops metadata whose TTL has lapsed. The Badger entry
// is already gone or about to be; this keeps the map and the count honest.
func (s *FileStore) pruneExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, info := range s.byID {
		if expired(info) {
			s.removeLocked(id)
		}
	}
}

func (s *FileStore) removeLocked(id uuid.UUID) {
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func expired(info models.FileInfo) bool {
	return info.ExpiresAt != nil && time.Now().After(*info.ExpiresAt)
}
