package boltstore

import (
	"context"
	"fmt"
	"time"

	"wallet-client-go/internal/store"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Compile-time check: *Store must satisfy store.Backend.
var _ store.Backend = (*Store)(nil)

// Store is a bbolt-backed offline cache backend. Each namespace is one bucket.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens (or creates) the bbolt file and its namespace bucket.
func Open(path, namespace string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("bolt path cannot be empty")
	}
	if namespace == "" {
		return nil, store.ErrEmptyNamespace
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(namespace)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", namespace, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	zap.L().Info("Bolt cache opened", zap.String("file", path), zap.String("namespace", namespace))
	return &Store{db: db, bucket: []byte(namespace)}, nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close bolt database", zap.Error(err))
	}
}

// Get ignores ctx; bbolt transactions are not cancellable.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", s.bucket)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: %s", store.ErrKeyNotFound, key)
		}

		// Copy the value since it's only valid during the transaction.
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	return value, err
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", s.bucket)
		}
		return b.Put([]byte(key), value)
	})
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", s.bucket)
		}

		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		return nil
	})
}
