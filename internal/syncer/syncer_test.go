package syncer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wallet-client-go/internal/api"
	"wallet-client-go/internal/boltstore"
	"wallet-client-go/internal/cache"
	"wallet-client-go/internal/feed"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/remote"
	"wallet-client-go/internal/seed"
)

type fakeRemote struct {
	wallets      []models.Wallet
	transactions []models.RawTransaction
	balancesErr  error
	txErr        error
	txDelay      time.Duration
	calls        atomic.Int32
}

func (f *fakeRemote) GetBalances(context.Context) ([]models.Wallet, error) {
	if f.balancesErr != nil {
		return nil, f.balancesErr
	}
	return f.wallets, nil
}

func (f *fakeRemote) GetTransactions(ctx context.Context, q remote.TransactionQuery) (*models.TransactionsPage, error) {
	f.calls.Add(1)
	if f.txDelay > 0 {
		select {
		case <-time.After(f.txDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.txErr != nil {
		return nil, f.txErr
	}
	return feed.Paginate(f.transactions, q.Page, q.PerPage), nil
}

func (f *fakeRemote) CreatePayout(context.Context, models.PayoutRequest) (*models.Payout, error) {
	return nil, errors.New("not supported")
}

func setupTestSyncer(t *testing.T, r *fakeRemote, interval time.Duration) (*Syncer, *cache.Store) {
	backend, err := boltstore.Open(filepath.Join(t.TempDir(), "cache.bolt"), "wallet")
	if err != nil {
		t.Fatalf("Failed to open bolt cache: %v", err)
	}
	t.Cleanup(backend.Close)

	store := cache.New(backend)
	s, err := New(Config{
		WalletService: api.NewWalletService(r, store, nil),
		Interval:      interval,
	})
	if err != nil {
		t.Fatalf("Failed to create syncer: %v", err)
	}
	return s, store
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Interval: time.Second}); err == nil {
		t.Error("Expected error without wallet service")
	}
	if _, err := New(Config{WalletService: &api.WalletService{}}); err == nil {
		t.Error("Expected error for zero interval")
	}
}

func TestSyncOnce_RefreshesSnapshot(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	r := &fakeRemote{wallets: seed.Wallets(), transactions: seed.Transactions(now)}
	s, store := setupTestSyncer(t, r, time.Minute)

	ctx := context.Background()
	if err := s.SyncOnce(ctx); err != nil {
		t.Fatalf("SyncOnce failed: %v", err)
	}

	if got := len(store.GetCachedBalances(ctx).OrElse(nil)); got != 3 {
		t.Errorf("Expected 3 cached wallets, got %d", got)
	}
	if got := len(store.GetCachedTransactions(ctx).OrElse(nil)); got != feed.PageSize {
		t.Errorf("Expected first page cached, got %d", got)
	}

	stats := s.Stats()
	if stats.Runs != 1 || stats.Failures != 0 || stats.Wallets != 3 || stats.Transactions != feed.PageSize {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestSyncOnce_RecordsFailure(t *testing.T) {
	r := &fakeRemote{
		wallets: seed.Wallets(),
		txErr:   fmt.Errorf("%w: connection refused", remote.ErrNetworkUnavailable),
	}
	s, _ := setupTestSyncer(t, r, time.Minute)

	err := s.SyncOnce(context.Background())
	if !errors.Is(err, remote.ErrNetworkUnavailable) {
		t.Fatalf("Expected network error with empty cache, got %v", err)
	}

	stats := s.Stats()
	if stats.Runs != 1 || stats.Failures != 1 || stats.LastError == nil {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestSyncOnce_BalancesFailureKeepsFeedRefresh(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	r := &fakeRemote{
		transactions: seed.Transactions(now)[:5],
		balancesErr:  &remote.RejectedError{StatusCode: 500},
		txDelay:      50 * time.Millisecond,
	}
	s, store := setupTestSyncer(t, r, time.Minute)

	ctx := context.Background()
	err := s.SyncOnce(ctx)
	var rejected *remote.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("Expected balances rejection, got %v", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Errorf("Expected feed refresh not to be canceled, got %v", err)
	}

	cached, ok := store.GetCachedTransactions(ctx).Get()
	if !ok || len(cached) != 5 {
		t.Errorf("Expected 5 cached transactions, got ok=%v len=%d", ok, len(cached))
	}
}

func TestSyncOnce_JoinsBothFailures(t *testing.T) {
	r := &fakeRemote{
		balancesErr: &remote.RejectedError{StatusCode: 401},
		txErr:       &remote.RejectedError{StatusCode: 403},
	}
	s, _ := setupTestSyncer(t, r, time.Minute)

	err := s.SyncOnce(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	for _, part := range []string{"balances:", "transactions:"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("Expected %q in %v", part, err)
		}
	}
}

func TestStartStop(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	r := &fakeRemote{wallets: seed.Wallets(), transactions: seed.Transactions(now)}
	s, _ := setupTestSyncer(t, r, time.Hour)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.Stats().Runs == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	s.Stop()

	if s.Stats().Runs == 0 {
		t.Fatal("Expected an immediate sync after Start")
	}
	if r.calls.Load() == 0 {
		t.Error("Expected transactions to be fetched")
	}
}

func TestStop_WithoutStart(t *testing.T) {
	s, _ := setupTestSyncer(t, &fakeRemote{}, time.Minute)
	s.Stop()
}
