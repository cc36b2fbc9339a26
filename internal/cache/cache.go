/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/seed"
	"wallet-client-go/internal/store"

	"go.uber.org/zap"
)

const (
	KeyBalances     = "cached_balances"
	KeyTransactions = "cached_transactions"
	KeySeeded       = "cache_seeded"

	// MaxTransactions is the size of the offline transaction snapshot
	MaxTransactions = 50
)

// Store is the offline snapshot of balances and transactions.
// Every operation is best-effort: backend failures are logged and
// reads degrade to Empty. Writes to the transaction snapshot through
// UpdateTransactions are serialized.
type Store struct {
	backend store.Backend
	clock   func() time.Time

	mu sync.Mutex
}

type Option func(*Store)

// WithClock sets the anchor used when seeding sample data
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func New(backend store.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) CacheBalances(ctx context.Context, wallets []models.Wallet) {
	s.write(ctx, KeyBalances, wallets)
}

func (s *Store) GetCachedBalances(ctx context.Context) Result[[]models.Wallet] {
	return read[[]models.Wallet](ctx, s.backend, KeyBalances)
}

// CacheTransactions overwrites the snapshot. Callers truncate to MaxTransactions.
func (s *Store) CacheTransactions(ctx context.Context, txs []models.RawTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(ctx, KeyTransactions, txs)
}

func (s *Store) GetCachedTransactions(ctx context.Context) Result[[]models.RawTransaction] {
	return read[[]models.RawTransaction](ctx, s.backend, KeyTransactions)
}

// UpdateTransactions runs a read-modify-write cycle on the transaction
// snapshot while holding the store's write lock. fn receives the current
// snapshot (nil when empty) and returns the one to persist.
func (s *Store) UpdateTransactions(ctx context.Context, fn func([]models.RawTransaction) []models.RawTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := read[[]models.RawTransaction](ctx, s.backend, KeyTransactions).OrElse(nil)
	s.write(ctx, KeyTransactions, fn(current))
}

// ClearCache removes both snapshots and the seed marker
func (s *Store) ClearCache(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, KeyBalances, KeyTransactions, KeySeeded); err != nil {
		zap.L().Warn("Failed to clear cache", zap.Error(err))
		return
	}
	zap.L().Info("Cache cleared")
}

// SeedCacheIfNeeded writes sample data on first run. Balances and
// transactions are each seeded only when their snapshot is empty.
// The marker makes later calls no-ops until ClearCache removes it.
func (s *Store) SeedCacheIfNeeded(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.backend.Get(ctx, KeySeeded)
	if err == nil && string(marker) == "true" {
		return
	}
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		zap.L().Warn("Failed to read seed marker", zap.Error(err))
		return
	}

	if wallets, ok := s.GetCachedBalances(ctx).Get(); !ok || len(wallets) == 0 {
		s.write(ctx, KeyBalances, seed.Wallets())
	}

	if txs, ok := s.GetCachedTransactions(ctx).Get(); !ok || len(txs) == 0 {
		s.write(ctx, KeyTransactions, seed.Transactions(s.clock()))
	}

	if err := s.backend.Set(ctx, KeySeeded, []byte("true")); err != nil {
		zap.L().Warn("Failed to write seed marker", zap.Error(err))
		return
	}
	zap.L().Info("Cache seeded with sample data")
}

func (s *Store) write(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		zap.L().Warn("Failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}

func read[T any](ctx context.Context, backend store.Backend, key string) Result[T] {
	data, err := backend.Get(ctx, key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return Empty[T]()
	}
	if err != nil {
		zap.L().Warn("Failed to read cache entry", zap.String("key", key), zap.Error(err))
		return Empty[T]()
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		zap.L().Warn("Corrupt cache entry", zap.String("key", key), zap.Error(err))
		return Empty[T]()
	}
	return Ok(value)
}
