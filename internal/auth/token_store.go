package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"wallet-client-go/internal/models"
)

// TokenStore persists the session tokens
type TokenStore interface {
	Save(tokens models.AuthTokens) error
	Load() (models.AuthTokens, bool, error)
	Delete() error
}

// FileTokenStore keeps tokens in a 0600 JSON file
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		return nil, fmt.Errorf("token file path cannot be empty")
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Save(tokens models.AuthTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode tokens: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	// Write then rename so a crash never leaves a truncated file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("unable to write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("unable to replace token file: %w", err)
	}
	return nil
}

// Load returns false when no session is stored
func (s *FileTokenStore) Load() (models.AuthTokens, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.AuthTokens{}, false, nil
	}
	if err != nil {
		return models.AuthTokens{}, false, fmt.Errorf("unable to read token file: %w", err)
	}

	var tokens models.AuthTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return models.AuthTokens{}, false, fmt.Errorf("unable to parse token file: %w", err)
	}
	return tokens, tokens.AccessToken != "", nil
}

func (s *FileTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove token file: %w", err)
	}
	return nil
}

// Token implements remote.TokenSource
func (s *FileTokenStore) Token(_ context.Context) (string, error) {
	tokens, ok, err := s.Load()
	if err != nil || !ok {
		return "", err
	}
	return tokens.AccessToken, nil
}
