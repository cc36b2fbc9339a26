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
	"fmt"

	"wallet-client-go/internal/cache"
	"wallet-client-go/internal/feed"
	"wallet-client-go/internal/filterstate"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/remote"
)

// Remote is the part of the wallet API the service consumes
type Remote interface {
	GetBalances(ctx context.Context) ([]models.Wallet, error)
	GetTransactions(ctx context.Context, q remote.TransactionQuery) (*models.TransactionsPage, error)
	CreatePayout(ctx context.Context, req models.PayoutRequest) (*models.Payout, error)
}

// WalletService ties the remote API, the offline cache and the active
// filter together for the command line tools.
type WalletService struct {
	remote  Remote
	cache   *cache.Store
	feed    *feed.Controller
	filters *filterstate.State
}

func NewWalletService(r Remote, store *cache.Store, filters *filterstate.State) *WalletService {
	if filters == nil {
		filters = filterstate.New()
	}
	return &WalletService{
		remote:  r,
		cache:   store,
		feed:    feed.NewController(r, store),
		filters: filters,
	}
}

func (s *WalletService) Filters() *filterstate.State {
	return s.filters
}

func (s *WalletService) Feed() *feed.Controller {
	return s.feed
}

// HealthCheck verifies the API answers an authenticated request
func (s *WalletService) HealthCheck(ctx context.Context) error {
	if _, err := s.remote.GetBalances(ctx); err != nil {
		return fmt.Errorf("wallet api health check failed: %w", err)
	}
	return nil
}
