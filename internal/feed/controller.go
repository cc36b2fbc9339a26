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

package feed

import (
	"context"

	"wallet-client-go/internal/cache"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/normalizer"
	"wallet-client-go/internal/remote"

	"go.uber.org/zap"
)

// PageSize is the fixed page size for network and cached pages
const PageSize = 15

// TransactionFetcher is the remote side of the feed
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, q remote.TransactionQuery) (*models.TransactionsPage, error)
}

type Controller struct {
	fetcher TransactionFetcher
	cache   *cache.Store
}

func NewController(fetcher TransactionFetcher, store *cache.Store) *Controller {
	return &Controller{
		fetcher: fetcher,
		cache:   store,
	}
}

// FetchPage returns one raw page for scope. Fetched records are merged
// into the offline snapshot. On a network-class failure the page is
// rebuilt from the snapshot with the same filters; when the snapshot is
// empty, or the failure is of any other class, the error is returned.
func (c *Controller) FetchPage(ctx context.Context, scope Scope, page int) (*models.TransactionsPage, error) {
	q := BuildQuery(scope, page)

	fetched, err := c.fetcher.GetTransactions(ctx, q)
	if err == nil {
		if fetched.Items != nil {
			c.cache.UpdateTransactions(ctx, func(cached []models.RawTransaction) []models.RawTransaction {
				return MergeTransactions(cached, fetched.Items, cache.MaxTransactions)
			})
		}
		return fetched, nil
	}

	if !remote.IsNetworkError(err) {
		return nil, err
	}

	cached, ok := c.cache.GetCachedTransactions(ctx).Get()
	if !ok || len(cached) == 0 {
		zap.L().Warn("Network unavailable and no cached transactions", zap.Error(err))
		return nil, err
	}

	zap.L().Info("Network unavailable, serving transactions from cache",
		zap.Int("page", q.Page),
		zap.Int("cached", len(cached)),
		zap.Error(err))

	return Paginate(filterCached(scope, q, cached), q.Page, q.PerPage), nil
}

// filterCached applies the server-side query and the display filters to
// the snapshot, so the cached result matches what the network path shows.
func filterCached(scope Scope, q remote.TransactionQuery, cached []models.RawTransaction) []models.RawTransaction {
	filtered, isFiltered := scope.(Filtered)

	out := make([]models.RawTransaction, 0, len(cached))
	for _, tx := range cached {
		if !q.Matches(tx) {
			continue
		}
		if isFiltered && !matchesDisplay(filtered.Filter, normalizer.Normalize(tx, nil)) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// FindCached looks a transaction up in the snapshot by identity key,
// enriched with its cached wallet.
func (c *Controller) FindCached(ctx context.Context, id string) (models.NormalizedTransaction, bool) {
	txs, ok := c.cache.GetCachedTransactions(ctx).Get()
	if !ok {
		return models.NormalizedTransaction{}, false
	}
	wallets := c.cache.GetCachedBalances(ctx).OrElse(nil)

	for _, tx := range txs {
		if normalizer.IdentityKey(tx) != id {
			continue
		}
		for i := range wallets {
			if wallets[i].Id == tx.WalletId {
				return normalizer.Normalize(tx, &wallets[i]), true
			}
		}
		return normalizer.Normalize(tx, nil), true
	}
	return models.NormalizedTransaction{}, false
}
