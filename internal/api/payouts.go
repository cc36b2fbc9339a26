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

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/payout"

	"go.uber.org/zap"
)

// ReviewPayout validates the form against the current balances
func (s *WalletService) ReviewPayout(ctx context.Context, form payout.Form) (models.PayoutRequest, error) {
	balances, err := s.Balances(ctx)
	if err != nil {
		return models.PayoutRequest{}, err
	}
	return payout.Review(form, balances.Wallets)
}

// SubmitPayout sends a reviewed payout and then refreshes the balance
// snapshot. A failed refresh does not fail the payout.
func (s *WalletService) SubmitPayout(ctx context.Context, req models.PayoutRequest) (*models.Payout, error) {
	zap.L().Info("Submitting payout",
		zap.Int64("wallet_id", req.WalletId),
		zap.String("provider", string(req.Provider)),
		zap.String("amount", req.Amount.String()))

	p, err := payout.Submit(ctx, s.remote, req)
	if err != nil {
		return nil, err
	}

	if wallets, err := s.remote.GetBalances(ctx); err != nil {
		zap.L().Warn("Balance refresh after payout failed",
			zap.Int64("payout_id", p.Id),
			zap.Error(err))
	} else {
		s.cache.CacheBalances(ctx, wallets)
	}

	return p, nil
}
