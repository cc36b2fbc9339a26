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

package models

import "time"

// TransactionType is the raw transaction kind
type TransactionType string

const (
	TransactionTopUp      TransactionType = "top-up"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// RawStatus is the status vocabulary of the wallet API
type RawStatus string

const (
	RawCompleted RawStatus = "completed"
	RawPending   RawStatus = "pending"
	RawFailed    RawStatus = "failed"
)

// Status is the display status vocabulary. StatusFailed only exists as a filter value.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
	StatusPending   Status = "pending"
	StatusCanceled  Status = "canceled"
	StatusFailed    Status = "failed"
)

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

type PayoutProvider string

const (
	ProviderBank PayoutProvider = "bank"
	ProviderCard PayoutProvider = "card"
)

// FilterType is the category dimension of a Filter
type FilterType string

const (
	FilterAll FilterType = "all"
	FilterIn  FilterType = "in"
	FilterOut FilterType = "out"
	FilterFee FilterType = "fee"
)

// Counterparty is who the money moved to or from
type Counterparty struct {
	Name    string `json:"name"`
	Account string `json:"account,omitempty"`
}

// NormalizedTransaction is the display-ready form of a RawTransaction.
// It is derived on demand and never persisted.
type NormalizedTransaction struct {
	Id           string          `json:"id"`
	Amount       string          `json:"amount"`
	Currency     string          `json:"currency"`
	Direction    Direction       `json:"direction"`
	Status       Status          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
	Counterparty *Counterparty   `json:"counterparty,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Method       PayoutProvider  `json:"method,omitempty"`
	Note         string          `json:"note,omitempty"`
	WalletId     int64           `json:"wallet_id"`
	Type         TransactionType `json:"type"`
}

// Filter is the user's active transaction filter selection
type Filter struct {
	Type     FilterType `yaml:"type" json:"type"`
	Currency string     `yaml:"currency,omitempty" json:"currency,omitempty"`
	DateFrom *time.Time `yaml:"date_from,omitempty" json:"date_from,omitempty"`
	DateTo   *time.Time `yaml:"date_to,omitempty" json:"date_to,omitempty"`
	Statuses []Status   `yaml:"statuses,omitempty" json:"statuses,omitempty"`
}

// DefaultFilter returns the filter with no constraints
func DefaultFilter() Filter {
	return Filter{Type: FilterAll}
}
