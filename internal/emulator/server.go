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

package emulator

import (
	"net/http"
	"sync"
	"time"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/seed"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server is an in-memory stand-in for the wallet API, backed by seed data
type Server struct {
	apiKey string
	clock  func() time.Time

	mu           sync.Mutex
	wallets      []models.Wallet
	transactions []models.RawTransaction
	tokens       map[string]string
	payouts      int64
}

type Option func(*Server)

// WithAPIKey requires every request to carry a matching X-API-Key
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		clock:  time.Now,
		tokens: map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wallets = seed.Wallets()
	s.transactions = seed.Transactions(s.clock())

	zap.L().Info("Emulator seeded",
		zap.Int("wallets", len(s.wallets)),
		zap.Int("transactions", len(s.transactions)))
	return s
}

// Handler returns the routed API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(s.requireAPIKey)

	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/balances", s.handleBalances)
		r.Get("/transactions", s.handleTransactions)
		r.Post("/payouts", s.handleCreatePayout)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
