// internal/kv/memory.go
//
// In-memory implementation of the Store interface.
// Used for ephemeral sessions, tests, and when no database path is configured.
//
// Characteristics:
//   - Values keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package kv

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards values map
	values map[string]string // keyed by store key
}

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return &memory{values: make(map[string]string)}
}

// Get looks up a key; ok is false when the key was never set.
func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set adds or replaces the value for key.
func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }
