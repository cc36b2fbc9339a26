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

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"wallet-client-go/internal/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidEmail    = errors.New("a valid email is required")
	ErrPasswordMissing = errors.New("password is required")
)

// Authenticator is the login endpoint
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type Service struct {
	api    Authenticator
	tokens TokenStore

	// onLogout runs after the token is removed, e.g. to reset filters
	onLogout []func() error
}

func NewService(api Authenticator, tokens TokenStore, onLogout ...func() error) *Service {
	return &Service{
		api:      api,
		tokens:   tokens,
		onLogout: onLogout,
	}
}

// Login authenticates and stores the access token
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrPasswordMissing
	}

	resp, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(resp.Auth); err != nil {
		return nil, fmt.Errorf("unable to store session: %w", err)
	}

	zap.L().Info("Logged in",
		zap.String("email", email),
		zap.Bool("tfa_enabled", resp.Tfa.Enabled))
	return resp, nil
}

// Logout drops the stored session and runs the logout hooks
func (s *Service) Logout() error {
	if err := s.tokens.Delete(); err != nil {
		return err
	}

	var errs []error
	for _, hook := range s.onLogout {
		if err := hook(); err != nil {
			errs = append(errs, err)
		}
	}

	zap.L().Info("Logged out")
	return errors.Join(errs...)
}

func (s *Service) IsAuthenticated() bool {
	_, ok, err := s.tokens.Load()
	if err != nil {
		zap.L().Warn("Unable to read session", zap.Error(err))
		return false
	}
	return ok
}
