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
	"sort"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/normalizer"
)

// MergeTransactions appends every fetched record whose identity key is
// not already cached, sorts newest first and keeps at most limit entries.
// Cached records are never replaced.
func MergeTransactions(cached, fetched []models.RawTransaction, limit int) []models.RawTransaction {
	merged := make([]models.RawTransaction, 0, len(cached)+len(fetched))
	seen := make(map[string]struct{}, len(cached)+len(fetched))

	for _, tx := range cached {
		seen[normalizer.IdentityKey(tx)] = struct{}{}
		merged = append(merged, tx)
	}

	for _, tx := range fetched {
		key := normalizer.IdentityKey(tx)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, tx)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Paginate slices items into 1-indexed pages the way the API does
func Paginate(items []models.RawTransaction, page, perPage int) *models.TransactionsPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = PageSize
	}

	total := len(items)
	start := (page - 1) * perPage
	end := start + perPage

	from, to := min(start, total), min(end, total)
	slice := make([]models.RawTransaction, to-from)
	copy(slice, items[from:to])

	return &models.TransactionsPage{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    (total + perPage - 1) / perPage,
		HasMore:     end < total,
		Items:       slice,
	}
}
