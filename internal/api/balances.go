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

package api

import (
	"context"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/normalizer"
	"wallet-client-go/internal/remote"

	"go.uber.org/zap"
)

// BalancesResult is the wallet list and where it came from
type BalancesResult struct {
	Wallets   []models.Wallet
	FromCache bool
}

// Balances fetches the wallets and refreshes the cached snapshot.
// When the network is unavailable the cached snapshot is returned instead.
func (s *WalletService) Balances(ctx context.Context) (*BalancesResult, error) {
	wallets, err := s.remote.GetBalances(ctx)
	if err == nil {
		s.cache.CacheBalances(ctx, wallets)
		return &BalancesResult{Wallets: wallets}, nil
	}

	if !remote.IsNetworkError(err) {
		zap.L().Error("Failed to get balances", zap.Error(err))
		return nil, err
	}

	cached, ok := s.cache.GetCachedBalances(ctx).Get()
	if !ok || len(cached) == 0 {
		return nil, err
	}

	zap.L().Info("Network unavailable, serving balances from cache",
		zap.Int("wallets", len(cached)),
		zap.Error(err))

	return &BalancesResult{Wallets: cached, FromCache: true}, nil
}

// DisplayBalances maps wallets to their display balances
func DisplayBalances(wallets []models.Wallet) []models.Balance {
	result := make([]models.Balance, len(wallets))
	for i, w := range wallets {
		result[i] = normalizer.ToBalance(w)
	}
	return result
}
