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

package payout

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wallet-client-go/internal/currency"
	"wallet-client-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	FieldAmount   = "amount"
	FieldCurrency = "currency"
	FieldProvider = "provider"
	FieldBankId   = "bank_id"
)

// BankAccount is a saved payout destination
type BankAccount struct {
	Id            int64
	BankName      string
	AccountNumber string
}

var bankAccounts = []BankAccount{
	{Id: 1, BankName: "Example Bank", AccountNumber: "****1234"},
	{Id: 2, BankName: "Another Bank", AccountNumber: "****5678"},
}

func BankAccounts() []BankAccount {
	out := make([]BankAccount, len(bankAccounts))
	copy(out, bankAccounts)
	return out
}

func findBankAccount(id int64) (BankAccount, bool) {
	for _, b := range bankAccounts {
		if b.Id == id {
			return b, true
		}
	}
	return BankAccount{}, false
}

// Form is the raw user input of the payout screen
type Form struct {
	Amount   string
	Currency string
	Provider models.PayoutProvider
	BankId   *int64
	Note     string
}

// ValidationError lists every invalid field with its message
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid payout: " + strings.Join(parts, "; ")
}

// Review validates the form against the user's wallets and builds the
// request shown on the review step.
func Review(form Form, wallets []models.Wallet) (models.PayoutRequest, error) {
	fields := map[string]string{}

	code := strings.ToUpper(strings.TrimSpace(form.Currency))
	var wallet *models.Wallet
	for i := range wallets {
		if currency.CodeOf(wallets[i].CurrencyId) == code {
			wallet = &wallets[i]
			break
		}
	}
	if code == "" || wallet == nil {
		fields[FieldCurrency] = "Currency is required"
	}

	balance := decimal.Zero
	if wallet != nil {
		balance = wallet.AvailableBalance
	}
	amount, msg := validateAmount(form.Amount, balance)
	if msg != "" {
		fields[FieldAmount] = msg
	}

	provider := form.Provider
	if provider == "" {
		provider = models.ProviderBank
	}
	switch provider {
	case models.ProviderBank:
		if form.BankId == nil {
			fields[FieldBankId] = "Bank account is required for bank transfers"
		} else if _, ok := findBankAccount(*form.BankId); !ok {
			fields[FieldBankId] = "Unknown bank account"
		}
	case models.ProviderCard:
	default:
		fields[FieldProvider] = "Invalid payout method"
	}

	if len(fields) > 0 {
		return models.PayoutRequest{}, &ValidationError{Fields: fields}
	}

	currencyId, ok := currency.IdOf(code)
	if !ok {
		return models.PayoutRequest{}, &ValidationError{Fields: map[string]string{FieldCurrency: "Invalid currency"}}
	}

	req := models.PayoutRequest{
		WalletId:   wallet.Id,
		Provider:   provider,
		Amount:     amount,
		CurrencyId: currencyId,
		Note:       strings.TrimSpace(form.Note),
	}
	if provider == models.ProviderBank {
		bankId := *form.BankId
		req.BankId = &bankId
	}
	return req, nil
}

func validateAmount(input string, balance decimal.Decimal) (decimal.Decimal, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, "Amount is required"
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, "Amount must be a valid number"
	}
	if !amount.IsPositive() {
		return decimal.Zero, "Amount must be greater than 0"
	}
	if amount.GreaterThan(balance) {
		return decimal.Zero, "Amount exceeds available balance"
	}
	return amount, ""
}

// Creator submits a reviewed payout
type Creator interface {
	CreatePayout(ctx context.Context, req models.PayoutRequest) (*models.Payout, error)
}

// Submit sends the reviewed request once; failures are not retried
func Submit(ctx context.Context, creator Creator, req models.PayoutRequest) (*models.Payout, error) {
	p, err := creator.CreatePayout(ctx, req)
	if err != nil {
		zap.L().Error("Payout failed",
			zap.Int64("wallet_id", req.WalletId),
			zap.String("amount", req.Amount.String()),
			zap.Error(err))
		return nil, err
	}
	return p, nil
}
