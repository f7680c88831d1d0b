// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"bytes"
	"context"
	"sync"

	"slimtrack/internal/domain"
)

// DB implements an in-memory key-value store.
type DB struct {
	mu     sync.Mutex
	values map[string][]byte
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{values: make(map[string][]byte)}
}

// Ensure interfaces are met.
var _ domain.KeyValueStore = (*DB)(nil)

// Get returns a copy of the value stored under key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.values[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

// Set stores a copy of value under key.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.values[key] = bytes.Clone(value)
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (db *DB) Remove(ctx context.Context, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.values, key)
	return nil
}

// Keys returns the number of stored keys.
func (db *DB) Keys() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.values)
}

// Close is a no-op; it lets the store be used wherever a closable backend is expected.
func (db *DB) Close() error { return nil }
