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
	"strings"

	"wallet-client-go/internal/api"
	"wallet-client-go/internal/common"
	"wallet-client-go/internal/config"
	"wallet-client-go/internal/currency"
	"wallet-client-go/internal/deeplink"
	"wallet-client-go/internal/feed"
	"wallet-client-go/internal/filterstate"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/remote"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type filterFlags struct {
	txType   string
	currency string
	from     string
	to       string
	statuses string
	reset    bool
}

func (f filterFlags) changed() bool {
	return f.reset || f.txType != "" || f.currency != "" || f.from != "" || f.to != "" || f.statuses != ""
}

// options turns the flags into filter updates. "none" clears a dimension.
func (f filterFlags) options() ([]filterstate.Option, error) {
	var opts []filterstate.Option

	switch models.FilterType(f.txType) {
	case "":
	case models.FilterAll, models.FilterIn, models.FilterOut, models.FilterFee:
		opts = append(opts, filterstate.WithType(models.FilterType(f.txType)))
	default:
		return nil, fmt.Errorf("invalid type %q, expected all, in, out or fee", f.txType)
	}

	switch f.currency {
	case "":
	case "none":
		opts = append(opts, filterstate.ClearCurrency())
	default:
		code := strings.ToUpper(strings.TrimSpace(f.currency))
		if _, ok := currency.IdOf(code); !ok {
			return nil, fmt.Errorf("unknown currency %q, expected one of %s", f.currency, strings.Join(currency.Codes(), ", "))
		}
		opts = append(opts, filterstate.WithCurrency(code))
	}

	if f.from == "none" || f.to == "none" {
		opts = append(opts, filterstate.ClearDates())
	} else {
		if f.from != "" {
			from, err := remote.ParseDate(f.from)
			if err != nil {
				return nil, fmt.Errorf("invalid --from: %w", err)
			}
			opts = append(opts, filterstate.WithDateFrom(from))
		}
		if f.to != "" {
			to, err := remote.ParseDate(f.to)
			if err != nil {
				return nil, fmt.Errorf("invalid --to: %w", err)
			}
			opts = append(opts, filterstate.WithDateTo(to))
		}
	}

	switch f.statuses {
	case "":
	case "none":
		opts = append(opts, filterstate.ClearStatuses())
	default:
		var statuses []models.Status
		for _, s := range strings.Split(f.statuses, ",") {
			status := models.Status(strings.TrimSpace(strings.ToLower(s)))
			switch status {
			case models.StatusCompleted, models.StatusPending, models.StatusDeclined, models.StatusCanceled, models.StatusFailed:
				statuses = append(statuses, status)
			default:
				return nil, fmt.Errorf("invalid status %q", s)
			}
		}
		opts = append(opts, filterstate.WithStatuses(statuses...))
	}

	return opts, nil
}

func describeFilter(f models.Filter) string {
	parts := []string{"type=" + string(f.Type)}
	if f.Currency != "" {
		parts = append(parts, "currency="+f.Currency)
	}
	if f.DateFrom != nil {
		parts = append(parts, "from="+remote.FormatDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		parts = append(parts, "to="+remote.FormatDate(*f.DateTo))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		parts = append(parts, "status="+strings.Join(statuses, ","))
	}
	return strings.Join(parts, " ")
}

type detail struct {
	label string
	value string
	sub   string
}

func transactionDetails(tx models.NormalizedTransaction) []detail {
	amount, err := decimal.NewFromString(tx.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	if tx.Direction == models.DirectionOut {
		amount = amount.Neg()
	}

	details := []detail{
		{label: "Amount", value: common.FormatCurrency(amount, tx.Currency)},
		{label: "Status", value: string(tx.Status)},
		{label: "Date", value: common.FormatDate(tx.Timestamp, false)},
	}
	if tx.Counterparty != nil {
		details = append(details, detail{label: "Description", value: tx.Counterparty.Name, sub: tx.Counterparty.Account})
	}
	if tx.Reference != "" {
		details = append(details, detail{label: "Wallet", value: tx.Reference})
	}
	if tx.Method != "" {
		details = append(details, detail{label: "Method", value: string(tx.Method)})
	}
	if tx.Note != "" {
		details = append(details, detail{label: "Note", value: tx.Note})
	}
	return details
}

func printDetails(tx models.NormalizedTransaction) {
	fmt.Printf("\n┌─ Transaction %s\n", tx.Id)
	fmt.Printf("│  %s\n", deeplink.ForTransaction(tx.Id))
	common.PrintBoxSeparator(common.DefaultWidth - 2)

	details := transactionDetails(tx)
	for i, d := range details {
		isLast := i == len(details)-1
		fmt.Printf("%s %-12s %s\n", common.BoxPrefix(isLast), d.label+":", d.value)
		if d.sub != "" {
			fmt.Printf("%s %-12s %s\n", common.BoxDetailPrefix(isLast), "", d.sub)
		}
	}
}

func showDetails(ctx context.Context, services *common.Services, ref string) error {
	id := ref
	if target, ok := deeplink.Parse(ref); ok {
		id = target.Id
	}

	tx, err := services.Wallet.TransactionDetails(ctx, id)
	if err != nil {
		return err
	}
	printDetails(tx)
	return nil
}

func loadPages(ctx context.Context, session *feed.Session, pages int, all bool) (feed.View, error) {
	view, err := session.LoadFirst(ctx)
	if err != nil {
		return view, err
	}
	for loaded := 1; view.HasMore && (all || loaded < pages); loaded++ {
		if view, err = session.LoadMore(ctx); err != nil {
			return view, err
		}
	}
	return view, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	var ff filterFlags
	flag.StringVar(&ff.txType, "type", "", "Filter by type: all, in, out, fee")
	flag.StringVar(&ff.currency, "currency", "", "Filter by currency code (none to clear)")
	flag.StringVar(&ff.from, "from", "", "Filter from date YYYY-MM-DD (none to clear dates)")
	flag.StringVar(&ff.to, "to", "", "Filter to date YYYY-MM-DD (none to clear dates)")
	flag.StringVar(&ff.statuses, "status", "", "Comma separated statuses: completed, pending, declined, canceled, failed (none to clear)")
	flag.BoolVar(&ff.reset, "reset", false, "Reset the saved filter before applying other flags")
	homeFlag := flag.Bool("home", false, "Show the unfiltered wallet home feed")
	pagesFlag := flag.Int("pages", 1, "Number of pages to load")
	allFlag := flag.Bool("all", false, "Load every page")
	detailsFlag := flag.String("details", "", "Show one transaction by id or deep link")
	flag.Parse()

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

	if *detailsFlag != "" {
		if err := showDetails(ctx, services, *detailsFlag); err != nil {
			if errors.Is(err, api.ErrTransactionNotFound) {
				fmt.Println("Transaction not found. Load the feed first to make it available offline.")
			}
			logger.Fatal("Failed to show transaction", zap.Error(err))
		}
		return
	}

	if ff.changed() {
		opts, err := ff.options()
		if err != nil {
			logger.Fatal("Invalid filter", zap.Error(err))
		}
		if ff.reset {
			services.Filters.Reset()
		}
		services.Filters.Set(opts...)
		if err := services.SaveFilters(); err != nil {
			logger.Warn("Unable to save filter", zap.Error(err))
		}
	}

	screen := feed.ScreenTransactions
	title := "TRANSACTIONS (" + describeFilter(services.Filters.Current()) + ")"
	if *homeFlag {
		screen = feed.ScreenWalletHome
		title = "TRANSACTIONS"
	}

	view, err := loadPages(ctx, services.Wallet.Transactions(ctx, screen), *pagesFlag, *allFlag)
	if err != nil && len(view.Transactions) == 0 {
		fmt.Println(common.DescribeError(err))
		logger.Fatal("Failed to load transactions", zap.Error(err))
	}
	if err != nil {
		logger.Warn("Stopped loading more pages", zap.Error(err))
	}

	common.PrintHeader(title, common.WideWidth)
	if len(view.Transactions) == 0 {
		fmt.Println("No transactions match the current filter")
	}
	for _, tx := range view.Transactions {
		fmt.Println(common.FormatTransaction(tx))
	}

	summary := fmt.Sprintf("Showing %d of %d", len(view.Transactions), view.Total)
	if view.HasMore {
		summary += " (more available, use --pages or --all)"
	}
	common.PrintFooter(summary, common.WideWidth)

	logger.Info("Transaction query completed",
		zap.Int("shown", len(view.Transactions)),
		zap.Int("total", view.Total),
		zap.Bool("has_more", view.HasMore))
}
