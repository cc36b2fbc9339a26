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

package remote

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"wallet-client-go/internal/models"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15

	dateLayout = "2006-01-02"
)

// TransactionQuery holds the server-side filters of GET /transactions.
// Zero values mean "not set".
type TransactionQuery struct {
	Page     int
	PerPage  int
	WalletId int64
	Type     models.TransactionType
	Status   models.RawStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

func (q TransactionQuery) Values() url.Values {
	v := url.Values{}

	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))

	if q.WalletId != 0 {
		v.Set("wallet_id", strconv.FormatInt(q.WalletId, 10))
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.DateFrom != nil {
		v.Set("date_from", FormatDate(*q.DateFrom))
	}
	if q.DateTo != nil {
		v.Set("date_to", FormatDate(*q.DateTo))
	}

	return v
}

// Matches applies the query's filters to a single record
func (q TransactionQuery) Matches(tx models.RawTransaction) bool {
	if q.WalletId != 0 && tx.WalletId != q.WalletId {
		return false
	}
	if q.Type != "" && tx.Type != q.Type {
		return false
	}
	if q.Status != "" && tx.Status != q.Status {
		return false
	}
	if q.DateFrom != nil && tx.CreatedAt.Before(*q.DateFrom) {
		return false
	}
	if q.DateTo != nil && tx.CreatedAt.After(*q.DateTo) {
		return false
	}
	return true
}

// ParseTransactionQuery is the inverse of Values
func ParseTransactionQuery(v url.Values) (TransactionQuery, error) {
	q := TransactionQuery{Page: DefaultPage, PerPage: DefaultPerPage}

	var err error
	if s := v.Get("page"); s != "" {
		if q.Page, err = strconv.Atoi(s); err != nil || q.Page < 1 {
			return q, fmt.Errorf("invalid page: %s", s)
		}
	}
	if s := v.Get("per_page"); s != "" {
		if q.PerPage, err = strconv.Atoi(s); err != nil || q.PerPage < 1 {
			return q, fmt.Errorf("invalid per_page: %s", s)
		}
	}
	if s := v.Get("wallet_id"); s != "" {
		if q.WalletId, err = strconv.ParseInt(s, 10, 64); err != nil {
			return q, fmt.Errorf("invalid wallet_id: %s", s)
		}
	}

	switch t := models.TransactionType(v.Get("type")); t {
	case "", models.TransactionTopUp, models.TransactionWithdrawal:
		q.Type = t
	default:
		return q, fmt.Errorf("invalid type: %s", t)
	}

	switch s := models.RawStatus(v.Get("status")); s {
	case "", models.RawCompleted, models.RawPending, models.RawFailed:
		q.Status = s
	default:
		return q, fmt.Errorf("invalid status: %s", s)
	}

	if s := v.Get("date_from"); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return q, fmt.Errorf("invalid date_from: %w", err)
		}
		q.DateFrom = &t
	}
	if s := v.Get("date_to"); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return q, fmt.Errorf("invalid date_to: %w", err)
		}
		q.DateTo = &t
	}

	return q, nil
}

// FormatDate writes a calendar date for UTC midnights and RFC3339 otherwise
func FormatDate(t time.Time) string {
	t = t.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// ParseDate accepts "2006-01-02" (UTC midnight) or RFC3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
