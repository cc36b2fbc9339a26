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

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope wraps every REST payload except login
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message any    `json:"message,omitempty"` // string or []string
	Status  int    `json:"status"`
	Type    string `json:"type,omitempty"`
}

// Wallet is one currency account of the signed-in user
type Wallet struct {
	Id               int64           `json:"id"`
	UserId           string          `json:"user_id"`
	CurrencyId       int             `json:"currency_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	ReservedBalance  decimal.Decimal `json:"reserved_balance"`
	ReferenceNumber  string          `json:"reference_number"`
}

// Balance is the display form of a wallet
type Balance struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// RawTransaction is the wire and cache format of a transaction.
// Amount is signed: positive for money in, negative for money out.
type RawTransaction struct {
	Id         *int64          `json:"id,omitempty"`
	WalletId   int64           `json:"wallet_id"`
	Type       TransactionType `json:"type"`
	Status     RawStatus       `json:"status"`
	Reason     string          `json:"reason"`
	Amount     decimal.Decimal `json:"amount"`
	CurrencyId int             `json:"currency_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Provider   PayoutProvider  `json:"provider,omitempty"`
	BankId     *int64          `json:"bank_id,omitempty"`
}

// TransactionsPage is one page of GET /transactions
type TransactionsPage struct {
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int              `json:"total"`
	LastPage    int              `json:"last_page"`
	HasMore     bool             `json:"has_more"`
	Items       []RawTransaction `json:"items"`
}

// PayoutRequest is the body of POST /payouts
type PayoutRequest struct {
	WalletId   int64           `json:"wallet_id"`
	Provider   PayoutProvider  `json:"provider"`
	Amount     decimal.Decimal `json:"amount"`
	CurrencyId int             `json:"currency_id"`
	BankId     *int64          `json:"bank_id,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// Payout is the record returned by POST /payouts
type Payout struct {
	Id         int64           `json:"id"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	Provider   PayoutProvider  `json:"provider"`
	WalletId   int64           `json:"wallet_id"`
	CurrencyId int             `json:"currency_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken        string `json:"access_token"`
	AccessTokenExpire  string `json:"access_token_expire"`
	RefreshToken       string `json:"refresh_token"`
	RefreshTokenExpire string `json:"refresh_token_expire"`
}

type TwoFactorAuth struct {
	Enabled bool    `json:"enabled"`
	Type    *string `json:"type"`
}

type LoginResponse struct {
	Auth AuthTokens    `json:"auth"`
	Tfa  TwoFactorAuth `json:"tfa"`
}

// APIError is the error body returned by the wallet API
type APIError struct {
	Timestamp string `json:"timestamp,omitempty"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
}
