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

package normalizer

import (
	"fmt"
	"strconv"
	"time"

	"wallet-client-go/internal/currency"
	"wallet-client-go/internal/models"
)

var statusMap = map[models.RawStatus]models.Status{
	models.RawCompleted: models.StatusCompleted,
	models.RawPending:   models.StatusPending,
	models.RawFailed:    models.StatusDeclined,
}

// IdentityKey returns the transaction id, or "{wallet_id}-{created_at}" when the API omitted one.
// The fallback is not unique for two transactions on one wallet sharing a timestamp.
func IdentityKey(tx models.RawTransaction) string {
	if tx.Id != nil {
		return strconv.FormatInt(*tx.Id, 10)
	}
	return fmt.Sprintf("%d-%s", tx.WalletId, tx.CreatedAt.UTC().Format(time.RFC3339Nano))
}

// Normalize converts a raw transaction into its display form.
// The sign of the amount is folded into Direction and cannot be recovered.
func Normalize(tx models.RawTransaction, wallet *models.Wallet) models.NormalizedTransaction {
	direction := models.DirectionOut
	if tx.Amount.IsPositive() {
		direction = models.DirectionIn
	}

	status, ok := statusMap[tx.Status]
	if !ok {
		status = models.StatusPending
	}

	counterparty := tx.Reason
	if counterparty == "" {
		counterparty = "Unknown"
	}

	var method models.PayoutProvider
	switch tx.Provider {
	case models.ProviderBank, models.ProviderCard:
		method = tx.Provider
	}

	var reference string
	if wallet != nil {
		reference = wallet.ReferenceNumber
	}

	return models.NormalizedTransaction{
		Id:           IdentityKey(tx),
		Amount:       tx.Amount.Abs().StringFixed(2),
		Currency:     currency.CodeOf(tx.CurrencyId),
		Direction:    direction,
		Status:       status,
		Timestamp:    tx.CreatedAt,
		Counterparty: &models.Counterparty{Name: counterparty},
		Reference:    reference,
		Method:       method,
		Note:         tx.Reason,
		WalletId:     tx.WalletId,
		Type:         tx.Type,
	}
}

// NormalizeAll normalizes a batch, enriching each item with its wallet when known
func NormalizeAll(txs []models.RawTransaction, wallets []models.Wallet) []models.NormalizedTransaction {
	byId := make(map[int64]*models.Wallet, len(wallets))
	for i := range wallets {
		byId[wallets[i].Id] = &wallets[i]
	}

	result := make([]models.NormalizedTransaction, len(txs))
	for i, tx := range txs {
		result[i] = Normalize(tx, byId[tx.WalletId])
	}
	return result
}

// ToBalance maps a wallet to its display balance
func ToBalance(w models.Wallet) models.Balance {
	return models.Balance{
		Amount:   w.AvailableBalance,
		Currency: currency.CodeOf(w.CurrencyId),
	}
}
