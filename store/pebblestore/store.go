package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goACL "github.com/MrEthical07/goACL"
	"github.com/cockroachdb/pebble"
)

// ErrUnavailable is an exported constant or variable used by the ACL engine.
var ErrUnavailable = errors.New("pebble unavailable")

// ErrCorruptRecord is returned when a stored value does not decode.
var ErrCorruptRecord = errors.New("corrupt acl record")

// Store persists each container as one JSON blob in a local Pebble
// database, keyed by the engine's storage key. Writes are synced, so a
// successful Save survives process crashes.
type Store struct {
	db    *pebble.DB
	owned bool
}

// Open opens (creating if needed) a Pebble database at dirname and wraps
// it in a [Store] that owns the handle; Close releases it.
func Open(dirname string) (*Store, error) {
	db, err := pebble.Open(dirname, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Store{db: db, owned: true}, nil
}

// New wraps an existing Pebble handle. The caller keeps ownership:
// [Store.Close] is a no-op and the handle's lifecycle stays outside.
func New(db *pebble.DB) *Store {
	return &Store{db: db}
}

// Close closes the database when this store opened it.
func (s *Store) Close() error {
	if s == nil || !s.owned || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load retrieves the record under key, or (nil, nil) when absent.
func (s *Store) Load(_ context.Context, key string) (*goACL.Record, error) {
	value, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer closer.Close()

	var rec goACL.Record
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &rec, nil
}

// Save writes the record under key with a synced write.
func (s *Store) Save(_ context.Context, key string, rec *goACL.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.db.Set([]byte(key), data, pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes the record under key. Absent keys are fine.
func (s *Store) Delete(_ context.Context, key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
