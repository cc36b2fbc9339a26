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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"

	"wallet-client-go/internal/common"
	"wallet-client-go/internal/config"
	"wallet-client-go/internal/currency"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/payout"

	"go.uber.org/zap"
)

func parseFlags() (payout.Form, bool) {
	amountFlag := flag.String("amount", "", "Amount to send (required)")
	currencyFlag := flag.String("currency", "", "Wallet currency code, e.g. EUR (required)")
	methodFlag := flag.String("method", string(models.ProviderBank), "Payout method: bank or card")
	bankFlag := flag.Int64("bank-id", 0, "Saved bank account id (required for bank payouts)")
	noteFlag := flag.String("note", "", "Optional note")
	confirmFlag := flag.Bool("confirm", false, "Submit the payout after review")
	flag.Parse()

	form := payout.Form{
		Amount:   *amountFlag,
		Currency: *currencyFlag,
		Provider: models.PayoutProvider(*methodFlag),
		Note:     *noteFlag,
	}
	if *bankFlag != 0 {
		bankId := *bankFlag
		form.BankId = &bankId
	}
	return form, *confirmFlag
}

func printValidation(err *payout.ValidationError) {
	fields := make([]string, 0, len(err.Fields))
	for f := range err.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Println("Please fix the following:")
	for i, f := range fields {
		fmt.Printf("%s %-10s %s\n", common.BoxPrefix(i == len(fields)-1), f, err.Fields[f])
	}
}

func printReview(req models.PayoutRequest) {
	code := currency.CodeOf(req.CurrencyId)

	common.PrintHeader("REVIEW PAYOUT", common.DefaultWidth)
	fmt.Printf("%-14s %s\n", "Amount:", common.FormatCurrency(req.Amount, code))
	fmt.Printf("%-14s %s\n", "Method:", req.Provider)
	if req.BankId != nil {
		for _, b := range payout.BankAccounts() {
			if b.Id == *req.BankId {
				fmt.Printf("%-14s %s %s\n", "Bank account:", b.BankName, b.AccountNumber)
			}
		}
	}
	if req.Note != "" {
		fmt.Printf("%-14s %s\n", "Note:", req.Note)
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	form, confirm := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if err := common.RequireSession(services, logger); err != nil {
		logger.Fatal("No session", zap.Error(err))
	}

	req, err := services.Wallet.ReviewPayout(ctx, form)
	if err != nil {
		var invalid *payout.ValidationError
		if errors.As(err, &invalid) {
			printValidation(invalid)
		} else {
			fmt.Println(common.DescribeError(err))
		}
		logger.Fatal("Payout review failed", zap.Error(err))
	}

	printReview(req)

	if !confirm {
		fmt.Println("Run again with --confirm to send this payout")
		return
	}

	p, err := services.Wallet.SubmitPayout(ctx, req)
	if err != nil {
		fmt.Println(common.DescribeError(err))
		logger.Fatal("Payout failed", zap.Error(err))
	}

	fmt.Printf("\nPayout %d submitted: %s (%s)\n", p.Id, common.FormatCurrency(p.Amount, currency.CodeOf(p.CurrencyId)), p.Status)
	logger.Info("Payout completed",
		zap.Int64("payout_id", p.Id),
		zap.String("status", p.Status))
}
