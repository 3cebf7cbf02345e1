// Package kv is the string key-value persistence used for the leaderboard and
// the remembered player name. Absent keys are not errors: Get reports ok=false.
package kv

import "context"

// Store is a string-valued key-value store.
type Store interface {
	// Get returns the value stored under key; ok is false if absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any underlying resources.
	Close() error
}

// Open returns a SQLite store at path, or an in-memory store when path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return OpenSQLite(path)
}
