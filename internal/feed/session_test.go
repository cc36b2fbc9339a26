package feed

import (
	"context"
	"testing"
	"time"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/seed"
)

func loadAll(t *testing.T, s *Session) View {
	ctx := context.Background()

	view, err := s.LoadFirst(ctx)
	if err != nil {
		t.Fatalf("LoadFirst failed: %v", err)
	}
	for view.HasMore {
		if view, err = s.LoadMore(ctx); err != nil {
			t.Fatalf("LoadMore failed: %v", err)
		}
	}
	return view
}

func viewIds(v View) []string {
	out := make([]string, len(v.Transactions))
	for i, tx := range v.Transactions {
		out[i] = tx.Id
	}
	return out
}

func TestSession_AccumulatesPages(t *testing.T) {
	store, cleanup := setupTestCache(t)
	defer cleanup()

	all := make([]int64, 0, 40)
	for id := int64(40); id > 0; id-- {
		all = append(all, id)
	}
	controller := NewController(&fakeFetcher{data: rawTxs(all...)}, store)
	session := controller.NewSession(Unfiltered{}, seed.Wallets())

	ctx := context.Background()
	view, err := session.LoadFirst(ctx)
	if err != nil {
		t.Fatalf("LoadFirst failed: %v", err)
	}
	if len(view.Transactions) != 15 || !view.HasMore || view.Total != 40 {
		t.Fatalf("Unexpected first view: len=%d more=%v total=%d", len(view.Transactions), view.HasMore, view.Total)
	}
	if view.Transactions[0].Reference != "WAL001" {
		t.Errorf("Expected wallet enrichment, got %q", view.Transactions[0].Reference)
	}

	if _, err := session.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	view, err = session.LoadMore(ctx)
	if err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if len(view.Transactions) != 40 || view.HasMore {
		t.Fatalf("Expected all 40 after three pages, got len=%d more=%v", len(view.Transactions), view.HasMore)
	}

	// Exhausted sessions do not fetch again
	before := len(controller.fetcher.(*fakeFetcher).calls)
	if _, err := session.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if after := len(controller.fetcher.(*fakeFetcher).calls); after != before {
		t.Errorf("Expected no fetch after the last page, got %d", after-before)
	}
}

func TestSession_LoadMoreErrorKeepsPages(t *testing.T) {
	store, cleanup := setupTestCache(t)
	defer cleanup()

	fetcher := &fakeFetcher{data: rawTxs(20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1)}
	session := NewController(fetcher, store).NewSession(Unfiltered{}, nil)

	ctx := context.Background()
	if _, err := session.LoadFirst(ctx); err != nil {
		t.Fatalf("LoadFirst failed: %v", err)
	}

	// Wipe the cache so the fallback has nothing to serve
	store.ClearCache(ctx)
	fetcher.setErr(errOffline)

	view, err := session.LoadMore(ctx)
	if err == nil {
		t.Fatal("Expected error with an empty cache")
	}
	if len(view.Transactions) != 15 || !view.HasMore {
		t.Errorf("Expected previous pages to survive, got len=%d more=%v", len(view.Transactions), view.HasMore)
	}
}

func TestSession_FilterEquivalence(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	dataset := seed.Transactions(now)

	from := now.AddDate(0, 0, -4).Truncate(24 * time.Hour)
	to := now.AddDate(0, 0, -1)
	after := to.AddDate(0, 0, 1)

	filters := map[string]models.Filter{
		"default":            models.DefaultFilter(),
		"in":                 {Type: models.FilterIn},
		"out":                {Type: models.FilterOut},
		"fee":                {Type: models.FilterFee},
		"currency":           {Type: models.FilterAll, Currency: "GBP"},
		"completed":          {Statuses: []models.Status{models.StatusCompleted}},
		"declined":           {Statuses: []models.Status{models.StatusDeclined}},
		"canceled":           {Statuses: []models.Status{models.StatusCanceled}},
		"failed":             {Statuses: []models.Status{models.StatusFailed}},
		"multi status":       {Statuses: []models.Status{models.StatusPending, models.StatusDeclined}},
		"date range":         {DateFrom: &from, DateTo: &to},
		"inverted range":     {DateFrom: &after, DateTo: &from},
		"out eur pending":    {Type: models.FilterOut, Currency: "EUR", Statuses: []models.Status{models.StatusPending}},
		"in usd since range": {Type: models.FilterIn, Currency: "USD", DateFrom: &from},
	}

	for name, filter := range filters {
		t.Run(name, func(t *testing.T) {
			store, cleanup := setupTestCache(t)
			defer cleanup()

			fetcher := &fakeFetcher{data: dataset}
			controller := NewController(fetcher, store)
			scope := ScopeFor(ScreenTransactions, filter)

			online := loadAll(t, controller.NewSession(scope, nil))

			// The cache now holds at most the fetched subset; reset it to the full set
			store.CacheTransactions(context.Background(), dataset)
			fetcher.setErr(errOffline)

			offline := loadAll(t, controller.NewSession(scope, nil))

			if !equalStrings(viewIds(online), viewIds(offline)) {
				t.Errorf("Network and cache results differ:\n online  %v\n offline %v", viewIds(online), viewIds(offline))
			}
		})
	}
}

func TestSession_CanceledFilterMatchesNothing(t *testing.T) {
	store, cleanup := setupTestCache(t)
	defer cleanup()

	dataset := seed.Transactions(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	controller := NewController(&fakeFetcher{data: dataset}, store)

	scope := ScopeFor(ScreenTransactions, models.Filter{Statuses: []models.Status{models.StatusCanceled}})
	view := loadAll(t, controller.NewSession(scope, nil))
	if len(view.Transactions) != 0 {
		t.Errorf("Expected canceled filter to match nothing, got %d", len(view.Transactions))
	}
}

func TestSession_CurrencyFilterIgnoresCase(t *testing.T) {
	store, cleanup := setupTestCache(t)
	defer cleanup()

	dataset := seed.Transactions(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	controller := NewController(&fakeFetcher{data: dataset}, store)

	upper := loadAll(t, controller.NewSession(ScopeFor(ScreenTransactions, models.Filter{Type: models.FilterAll, Currency: "EUR"}), nil))
	lower := loadAll(t, controller.NewSession(ScopeFor(ScreenTransactions, models.Filter{Type: models.FilterAll, Currency: "eur"}), nil))

	if len(upper.Transactions) == 0 {
		t.Fatal("Expected EUR transactions in the sample feed")
	}
	if !equalStrings(viewIds(upper), viewIds(lower)) {
		t.Errorf("Expected the same records for eur and EUR, got %d and %d", len(lower.Transactions), len(upper.Transactions))
	}
}

func TestSession_WalletHomeIgnoresFilter(t *testing.T) {
	store, cleanup := setupTestCache(t)
	defer cleanup()

	dataset := seed.Transactions(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	fetcher := &fakeFetcher{data: dataset}
	controller := NewController(fetcher, store)

	scope := ScopeFor(ScreenWalletHome, models.Filter{Type: models.FilterFee, Currency: "GBP"})
	view := loadAll(t, controller.NewSession(scope, nil))
	if len(view.Transactions) != len(dataset) {
		t.Errorf("Expected the full feed on wallet home, got %d of %d", len(view.Transactions), len(dataset))
	}
	if q := fetcher.calls[0]; q.Type != "" || q.Status != "" {
		t.Errorf("Expected no filter params on wallet home, got %+v", q)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
