package redisstore

import (
	"context"
	"errors"
	"fmt"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check: *Store must satisfy store.Backend.
var _ store.Backend = (*Store)(nil)

// Store keeps cache documents in Redis under "namespace:key" with no expiry.
type Store struct {
	client    redis.UniversalClient
	namespace string
}

func New(ctx context.Context, cfg models.RedisConfig, namespace string) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	if namespace == "" {
		return nil, store.ErrEmptyNamespace
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	zap.L().Info("Redis cache connected", zap.String("addr", cfg.Addr), zap.String("namespace", namespace))
	return NewWithClient(client, namespace), nil
}

// NewWithClient wraps an existing client, e.g. a cluster client
func NewWithClient(client redis.UniversalClient, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

func (s *Store) key(name string) string {
	return s.namespace + ":" + name
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, store.ErrEmptyKey
	}

	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", store.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if err := s.client.Close(); err != nil {
		zap.L().Warn("Failed to close redis client", zap.Error(err))
	}
}
