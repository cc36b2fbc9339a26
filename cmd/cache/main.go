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
	"fmt"

	"wallet-client-go/internal/api"
	"wallet-client-go/internal/common"
	"wallet-client-go/internal/config"
	"wallet-client-go/internal/normalizer"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	clearFlag := flag.Bool("clear", false, "Remove cached balances, transactions and the seed marker")
	seedFlag := flag.Bool("seed", false, "Seed sample data when the cache has never been seeded")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Opening cache",
		zap.String("backend", cfg.Cache.Backend),
		zap.String("namespace", cfg.Cache.Namespace))
	backend, store, err := common.InitializeCacheOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open cache", zap.Error(err))
	}
	defer backend.Close()

	if *clearFlag {
		store.ClearCache(ctx)
		fmt.Println("Cache cleared")
	}
	if *seedFlag {
		store.SeedCacheIfNeeded(ctx)
	}

	wallets := store.GetCachedBalances(ctx).OrElse(nil)
	txs := store.GetCachedTransactions(ctx).OrElse(nil)

	common.PrintHeader("OFFLINE CACHE", common.DefaultWidth)
	for i, b := range api.DisplayBalances(wallets) {
		fmt.Printf("%s %s\n", common.BoxPrefix(i == len(wallets)-1), common.FormatCurrency(b.Amount, b.Currency))
	}
	for _, tx := range normalizer.NormalizeAll(txs, wallets) {
		fmt.Println(common.FormatTransaction(tx))
	}
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d wallets, %d transactions cached", len(wallets), len(txs)), common.DefaultWidth)
}
