// Package kv provides the durable client-side key-value store backing the
// entity store's session continuity: collection deltas, the auth token and
// the current user profile survive a restart. Reads are best-effort; a
// missing or corrupt blob degrades to the caller's default instead of
// failing.
package kv

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// Well-known keys.
const (
	KeyAuthToken   = "auth_token"
	KeyCurrentUser = "current_user"
	KeySettings    = "settings"
)

const bucketName = "campustrack"

// Store is a bbolt-backed JSON key-value store.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put marshals value as JSON and stores it under key.
func (s *Store) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), data)
	})
}

// Get unmarshals the blob stored under key into out. It returns false when
// the key is absent or the blob does not parse; out is left untouched in
// that case so the caller's default survives.
func (s *Store) Get(key string, out interface{}) bool {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Discarding corrupt persisted blob")
		return false
	}
	return true
}

// Delete removes the blob stored under key.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
}

// CollectionKey returns the persistence key for a collection's deltas.
func CollectionKey(collection string) string {
	return collection + "_updates"
}
