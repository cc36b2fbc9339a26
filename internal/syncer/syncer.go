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

package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-client-go/internal/api"
	"wallet-client-go/internal/feed"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config contains configuration for Syncer
type Config struct {
	WalletService *api.WalletService
	Interval      time.Duration
}

// Stats describes the outcome of the most recent sync
type Stats struct {
	Runs         int
	Failures     int
	LastRun      time.Time
	LastError    error
	Wallets      int
	Transactions int
	FromCache    bool
}

// Syncer refreshes the offline snapshot in the background: balances and
// the first unfiltered page of the feed, on a fixed interval.
type Syncer struct {
	wallet   *api.WalletService
	interval time.Duration

	scheduler gocron.Scheduler

	mutex sync.RWMutex
	stats Stats
}

func New(cfg Config) (*Syncer, error) {
	if cfg.WalletService == nil {
		return nil, fmt.Errorf("wallet service is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("sync interval must be positive")
	}

	return &Syncer{
		wallet:   cfg.WalletService,
		interval: cfg.Interval,
	}, nil
}

// Start runs one sync immediately and then every interval until Stop
func (s *Syncer) Start(ctx context.Context) error {
	zap.L().Info("Starting syncer", zap.Duration("interval", s.interval))

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("unable to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if err := s.SyncOnce(ctx); err != nil {
				zap.L().Warn("Sync failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName("wallet-sync"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("unable to schedule sync job: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler

	zap.L().Info("Syncer started successfully")
	return nil
}

// Stop waits for a running sync to finish and stops the scheduler
func (s *Syncer) Stop() {
	if s.scheduler == nil {
		return
	}

	zap.L().Info("Stopping syncer")
	if err := s.scheduler.Shutdown(); err != nil {
		zap.L().Warn("Scheduler shutdown failed", zap.Error(err))
	}
	zap.L().Info("Syncer stopped")
}

// SyncOnce refreshes balances and the first feed page concurrently.
// The two refreshes are independent: one failing does not cancel the other.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	var (
		wallets   int
		items     int
		fromCache bool

		balancesErr error
		feedErr     error
	)

	var g errgroup.Group

	g.Go(func() error {
		res, err := s.wallet.Balances(ctx)
		if err != nil {
			balancesErr = fmt.Errorf("balances: %w", err)
			return nil
		}
		wallets = len(res.Wallets)
		fromCache = res.FromCache
		return nil
	})

	g.Go(func() error {
		page, err := s.wallet.Feed().FetchPage(ctx, feed.Unfiltered{}, 1)
		if err != nil {
			feedErr = fmt.Errorf("transactions: %w", err)
			return nil
		}
		items = len(page.Items)
		return nil
	})

	_ = g.Wait()
	err := errors.Join(balancesErr, feedErr)
	s.record(wallets, items, fromCache, err)

	if err != nil {
		return err
	}

	zap.L().Info("Sync completed",
		zap.Int("wallets", wallets),
		zap.Int("transactions", items),
		zap.Bool("from_cache", fromCache))
	return nil
}

func (s *Syncer) record(wallets, items int, fromCache bool, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stats.Runs++
	s.stats.LastRun = time.Now()
	s.stats.LastError = err
	if err != nil {
		s.stats.Failures++
		return
	}
	s.stats.Wallets = wallets
	s.stats.Transactions = items
	s.stats.FromCache = fromCache
}

func (s *Syncer) Stats() Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.stats
}
