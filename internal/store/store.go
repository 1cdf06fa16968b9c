// Package store wraps an embedded Badger database as a synchronous key-value
// adapter for whole-collection JSON blobs. Every mutation serializes and
// overwrites the full collection under its fixed key; collections are small
// (tens to low hundreds of entries), so write amplification is accepted.
package store

import (
	json "github.com/go-json-experiment/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key identifies one persisted collection.
type Key string

// Fixed storage keys. The layout (key -> JSON shape) is part of the external
// contract and must stay stable across versions.
const (
	KeyTools      Key = "tools"
	KeyCategories Key = "categories"
	KeyAccounts   Key = "accounts"
	KeyMembers    Key = "members"
	KeyTheme      Key = "theme"
	KeyAppVersion Key = "app_version"
)

// Keys lists every persisted key, in a stable order.
var Keys = []Key{KeyTools, KeyCategories, KeyAccounts, KeyMembers, KeyTheme, KeyAppVersion}

// StorageChanged is emitted after every successful write. Origin identifies
// the writing state instance so writers can ignore their own echoes.
type StorageChanged struct {
	Key    Key
	Origin string
}

// EventEmitter is the interface for broadcasting storage changes.
// Store uses this to notify other state instances without depending on the
// event bus implementation.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// Store wraps a Badger database instance.
type Store struct {
	db      *badger.DB
	logger  *slog.Logger
	emitter EventEmitter
}

// New creates a new Store instance with the given database path and event
// emitter. The emitter is required and used to broadcast storage changes.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:      db,
		logger:  logger,
		emitter: emitter,
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Load reads the collection stored under key into a fresh value of type T.
// A missing key or a value that fails to parse falls back to def; loads
// never fail with an error the caller must handle.
func Load[T any](s *Store, key Key, def T) T {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append(raw[:0], val...)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("storage read failed, using default", "key", key, "error", err)
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		if s.logger != nil {
			s.logger.Warn("stored value failed to parse, using default", "key", key, "error", err)
		}
		return def
	}
	return value
}

// Save serializes value and overwrites the collection under key, then emits
// a StorageChanged event carrying origin.
func Save[T any](s *Store, key Key, value T, origin string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	s.emitter.Emit(StorageChanged{Key: key, Origin: origin})
	return nil
}

// Clear drops every persisted key (full reset). A StorageChanged event is
// emitted per key so other instances re-load their defaults.
func (s *Store) Clear(origin string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range Keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, key := range Keys {
		s.emitter.Emit(StorageChanged{Key: key, Origin: origin})
	}
	if s.logger != nil {
		s.logger.Info("store cleared")
	}
	return nil
}
