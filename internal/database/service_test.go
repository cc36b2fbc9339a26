package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDb(t *testing.T, namespace string) (*Service, func()) {
	service, err := NewService(context.Background(), models.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	}, namespace)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		service.Close()
	}

	return service, cleanup
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       models.DatabaseConfig
		namespace string
	}{
		{"empty path", models.DatabaseConfig{MaxOpenConns: 1, PingTimeout: time.Second}, "wallet"},
		{"empty namespace", models.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, PingTimeout: time.Second}, ""},
		{"zero conns", models.DatabaseConfig{Path: ":memory:", PingTimeout: time.Second}, "wallet"},
		{"zero ping timeout", models.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1}, "wallet"},
	}
	for _, tt := range tests {
		if _, err := NewService(context.Background(), tt.cfg, tt.namespace); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestGet_MissingKey(t *testing.T) {
	service, cleanup := setupTestDb(t, "wallet")
	defer cleanup()

	_, err := service.Get(context.Background(), "cached_balances")
	if !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestSetGet_Overwrite(t *testing.T) {
	service, cleanup := setupTestDb(t, "wallet")
	defer cleanup()

	ctx := context.Background()
	if err := service.Set(ctx, "cached_transactions", []byte(`[1]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := service.Set(ctx, "cached_transactions", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Second Set failed: %v", err)
	}

	got, err := service.Get(ctx, "cached_transactions")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("Expected overwritten value, got %s", got)
	}

	keys, err := service.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("Expected a single key after overwrite, got %v", keys)
	}
}

func TestDelete_MultipleKeys(t *testing.T) {
	service, cleanup := setupTestDb(t, "wallet")
	defer cleanup()

	ctx := context.Background()
	for _, key := range []string{"cached_balances", "cached_transactions", "cache_seeded"} {
		if err := service.Set(ctx, key, []byte(`true`)); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := service.Delete(ctx, "cached_balances", "cache_seeded", "never_written"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	keys, err := service.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "cached_transactions" {
		t.Errorf("Expected only cached_transactions to remain, got %v", keys)
	}
}

func TestNamespaces_AreIsolated(t *testing.T) {
	service, cleanup := setupTestDb(t, "alice")
	defer cleanup()

	ctx := context.Background()
	if err := service.Set(ctx, "cache_seeded", []byte(`true`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	other := &Service{db: service.db, namespace: "bob"}
	if _, err := other.Get(ctx, "cache_seeded"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Expected other namespace to miss, got %v", err)
	}
}

func TestSet_EmptyKey(t *testing.T) {
	service, cleanup := setupTestDb(t, "wallet")
	defer cleanup()

	if err := service.Set(context.Background(), "", []byte(`{}`)); !errors.Is(err, store.ErrEmptyKey) {
		t.Errorf("Expected ErrEmptyKey, got %v", err)
	}
}
