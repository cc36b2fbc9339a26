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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-client-go/internal/common"
	"wallet-client-go/internal/config"
	"wallet-client-go/internal/syncer"

	"go.uber.org/zap"
)

func main() {
	intervalFlag := flag.Duration("interval", 0, "Refresh interval (defaults to SYNC_INTERVAL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting wallet syncer")

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if !services.Auth.IsAuthenticated() {
		zap.L().Fatal("No session", zap.Error(common.ErrNotLoggedIn))
	}

	interval := cfg.Sync.Interval
	if *intervalFlag > 0 {
		interval = *intervalFlag
	}

	s, err := syncer.New(syncer.Config{
		WalletService: services.Wallet,
		Interval:      interval,
	})
	if err != nil {
		zap.L().Fatal("Failed to create syncer", zap.Error(err))
	}

	if err := s.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start syncer", zap.Error(err))
	}

	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zap.L().Info("Shutdown signal received, stopping syncer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
		stats := s.Stats()
		zap.L().Info("Syncer stopped gracefully",
			zap.Int("runs", stats.Runs),
			zap.Int("failures", stats.Failures))
	case <-shutdownCtx.Done():
		zap.L().Warn("Forced shutdown after timeout")
	}
}
