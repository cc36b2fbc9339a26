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

package seed

import (
	"math/rand/v2"
	"sort"
	"time"

	"wallet-client-go/internal/currency"
	"wallet-client-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	TransactionCount = 50
	perDay           = 5

	// Fixed generator seeds so every install sees the same sample feed
	seedHi uint64 = 0x6e61746976652d74
	seedLo uint64 = 0x65616d732d77616c
)

var reasons = []string{
	"Salary payment",
	"Rent payment",
	"Freelance work",
	"Online purchase",
	"Investment return",
	"Utility bill",
	"Grocery shopping",
	"Restaurant payment",
	"Subscription fee",
	"Refund",
}

var walletByCurrency = map[string]int64{
	"EUR": 1,
	"USD": 2,
	"GBP": 3,
}

// Wallets returns the three sample wallets of user "1"
func Wallets() []models.Wallet {
	return []models.Wallet{
		sampleWallet(1, "EUR", "1250.50", "WAL001"),
		sampleWallet(2, "USD", "850.25", "WAL002"),
		sampleWallet(3, "GBP", "750.00", "WAL003"),
	}
}

func sampleWallet(id int64, code, balance, reference string) models.Wallet {
	currencyId, _ := currency.IdOf(code)
	amount := decimal.RequireFromString(balance)
	return models.Wallet{
		Id:               id,
		UserId:           "1",
		CurrencyId:       currencyId,
		AvailableBalance: amount,
		CurrentBalance:   amount,
		ReservedBalance:  decimal.Zero,
		ReferenceNumber:  reference,
	}
}

// Transactions generates the sample feed anchored on the day of now.
// Records are spread five per day going back from the anchor and
// returned newest first. The same anchor day always yields the same feed.
func Transactions(now time.Time) []models.RawTransaction {
	rng := rand.New(rand.NewPCG(seedHi, seedLo))

	types := []models.TransactionType{models.TransactionTopUp, models.TransactionWithdrawal}
	statuses := []models.RawStatus{models.RawCompleted, models.RawPending, models.RawFailed}
	codes := []string{"EUR", "USD", "GBP"}

	day := now.UTC().Truncate(24 * time.Hour)
	txs := make([]models.RawTransaction, 0, TransactionCount)

	for i := 0; i < TransactionCount; i++ {
		daysAgo := i / perDay
		createdAt := day.AddDate(0, 0, -daysAgo).
			Add(time.Duration(rng.IntN(24)) * time.Hour).
			Add(time.Duration(rng.IntN(60)) * time.Minute)

		txType := types[rng.IntN(len(types))]
		status := statuses[rng.IntN(len(statuses))]
		code := codes[rng.IntN(len(codes))]
		currencyId, _ := currency.IdOf(code)
		reason := reasons[rng.IntN(len(reasons))]

		amount := decimal.NewFromFloat(rng.Float64()*2000 + 50).Round(2)
		if txType == models.TransactionWithdrawal {
			amount = amount.Neg()
		}

		id := int64(i + 1)
		tx := models.RawTransaction{
			Id:         &id,
			WalletId:   walletByCurrency[code],
			Type:       txType,
			Status:     status,
			Reason:     reason,
			Amount:     amount,
			CurrencyId: currencyId,
			CreatedAt:  createdAt,
		}

		if txType == models.TransactionWithdrawal {
			tx.Provider = models.ProviderCard
			if rng.Float64() > 0.5 {
				tx.Provider = models.ProviderBank
			}
			if rng.Float64() > 0.5 {
				bankId := int64(1)
				tx.BankId = &bankId
			}
		}

		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs
}
