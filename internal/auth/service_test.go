package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"wallet-client-go/internal/models"
)

type fakeAuthenticator struct {
	err error
	req models.LoginRequest
}

func (f *fakeAuthenticator) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{Auth: models.AuthTokens{AccessToken: "access", RefreshToken: "refresh"}}, nil
}

func setupTestService(t *testing.T) (*Service, *FileTokenStore, *int) {
	store, err := NewFileTokenStore(filepath.Join(t.TempDir(), "session", "token.json"))
	if err != nil {
		t.Fatalf("Failed to create token store: %v", err)
	}

	resets := 0
	svc := NewService(&fakeAuthenticator{}, store, func() error {
		resets++
		return nil
	})
	return svc, store, &resets
}

func TestLogin_StoresToken(t *testing.T) {
	svc, store, _ := setupTestService(t)

	if svc.IsAuthenticated() {
		t.Fatal("Expected no session before login")
	}

	if _, err := svc.Login(context.Background(), " user@example.com ", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	token, err := store.Token(context.Background())
	if err != nil || token != "access" {
		t.Errorf("Expected stored access token, got %q (%v)", token, err)
	}
	if !svc.IsAuthenticated() {
		t.Error("Expected session after login")
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected 0600 token file, got %v", info.Mode().Perm())
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	if _, err := svc.Login(context.Background(), "not-an-email", "pw"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.co", ""); !errors.Is(err, ErrPasswordMissing) {
		t.Errorf("Expected ErrPasswordMissing, got %v", err)
	}
}

func TestLogin_FailureStoresNothing(t *testing.T) {
	store, _ := NewFileTokenStore(filepath.Join(t.TempDir(), "token.json"))
	svc := NewService(&fakeAuthenticator{err: errors.New("rejected")}, store)

	if _, err := svc.Login(context.Background(), "a@b.co", "pw"); err == nil {
		t.Fatal("Expected login error")
	}
	if svc.IsAuthenticated() {
		t.Error("Expected no session after failed login")
	}
}

func TestLogout_RunsHooks(t *testing.T) {
	svc, store, resets := setupTestService(t)

	if _, err := svc.Login(context.Background(), "a@b.co", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if *resets != 1 {
		t.Errorf("Expected logout hook to run once, got %d", *resets)
	}
	if token, _ := store.Token(context.Background()); token != "" {
		t.Errorf("Expected token removed, got %q", token)
	}

	// Logging out twice is harmless
	if err := svc.Logout(); err != nil {
		t.Errorf("Second logout failed: %v", err)
	}
}

func TestNewFileTokenStore_EmptyPath(t *testing.T) {
	if _, err := NewFileTokenStore(""); err == nil {
		t.Error("Expected error for empty path")
	}
}
