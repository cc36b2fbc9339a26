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
	"errors"
	"fmt"

	"wallet-client-go/internal/feed"
	"wallet-client-go/internal/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transactions opens a feed session for screen with the active filter.
// Cached wallets are used to enrich items with their reference number.
func (s *WalletService) Transactions(ctx context.Context, screen feed.Screen) *feed.Session {
	scope := feed.ScopeFor(screen, s.filters.Current())
	wallets := s.cache.GetCachedBalances(ctx).OrElse(nil)
	return s.feed.NewSession(scope, wallets)
}

// TransactionDetails returns a transaction from the offline snapshot
func (s *WalletService) TransactionDetails(ctx context.Context, id string) (models.NormalizedTransaction, error) {
	if id == "" {
		return models.NormalizedTransaction{}, fmt.Errorf("transaction id is required")
	}

	tx, ok := s.feed.FindCached(ctx, id)
	if !ok {
		return models.NormalizedTransaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return tx, nil
}
