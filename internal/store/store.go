package store

import (
	"context"
	"errors"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrKeyNotFound    = errors.New("cache key not found")
	ErrEmptyKey       = errors.New("cache key cannot be empty")
	ErrEmptyNamespace = errors.New("cache namespace cannot be empty")
)

// Backend is the key-value contract every offline cache backend (SQLite, bbolt, Redis) must satisfy.
// Values are opaque JSON documents; keys are scoped to the namespace the backend was opened with.
type Backend interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes all given keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// --- Lifecycle ---
	Close()
}
