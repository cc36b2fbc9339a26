package boltstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"wallet-client-go/internal/store"
)

func setupTestStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "cache.bolt")
	s, err := Open(path, "wallet")
	if err != nil {
		t.Fatalf("Failed to open bolt store: %v", err)
	}
	return s, path
}

func TestOpen_Validation(t *testing.T) {
	if _, err := Open("", "wallet"); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "x.bolt"), ""); !errors.Is(err, store.ErrEmptyNamespace) {
		t.Errorf("Expected ErrEmptyNamespace, got %v", err)
	}
}

func TestStore_RoundTripAndDelete(t *testing.T) {
	s, _ := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Get(ctx, "cached_balances"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("Expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "cached_balances", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx, "cached_balances")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Unexpected value %s", got)
	}

	if err := s.Delete(ctx, "cached_balances", "missing"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "cached_balances"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Expected key to be gone, got %v", err)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	s, path := setupTestStore(t)

	ctx := context.Background()
	if err := s.Set(ctx, "cache_seeded", []byte(`true`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	reopened, err := Open(path, "wallet")
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "cache_seeded")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != "true" {
		t.Errorf("Expected true, got %s", got)
	}
}
