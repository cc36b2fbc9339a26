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
	"wallet-client-go/internal/feed"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func printBalances(result *api.BalancesResult) {
	balances := api.DisplayBalances(result.Wallets)
	for i, b := range balances {
		isLast := i == len(balances)-1
		fmt.Printf("%s %-5s %20s  (%s)\n",
			common.BoxPrefix(isLast),
			b.Currency,
			common.FormatCurrency(b.Amount, b.Currency),
			result.Wallets[i].ReferenceNumber)
	}
}

func printRecent(view feed.View, limit int) {
	txs := view.Transactions
	if len(txs) > limit {
		txs = txs[:limit]
	}
	if len(txs) == 0 {
		fmt.Println("No transactions yet")
		return
	}
	for _, tx := range txs {
		fmt.Println(common.FormatTransaction(tx))
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	recentFlag := flag.Int("recent", 5, "Number of recent transactions to show")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if err := common.RequireSession(services, logger); err != nil {
		logger.Fatal("No session", zap.Error(err))
	}

	var (
		balances *api.BalancesResult
		recent   feed.View
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balances, err = services.Wallet.Balances(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = services.Wallet.Transactions(gctx, feed.ScreenWalletHome).LoadFirst(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		fmt.Println(common.DescribeError(err))
		logger.Fatal("Failed to load wallet", zap.Error(err))
	}

	common.PrintHeader("BALANCES", common.DefaultWidth)
	printBalances(balances)
	if balances.FromCache {
		fmt.Println("\nOffline: showing saved balances")
	}

	common.PrintHeader("RECENT TRANSACTIONS", common.DefaultWidth)
	printRecent(recent, *recentFlag)

	common.PrintFooter(fmt.Sprintf("SUMMARY: %d wallets, %d transactions", len(balances.Wallets), recent.Total), common.DefaultWidth)

	logger.Info("Balance query completed",
		zap.Int("wallets", len(balances.Wallets)),
		zap.Bool("from_cache", balances.FromCache),
		zap.Int("transactions", recent.Total))
}
