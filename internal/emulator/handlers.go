package emulator

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"wallet-client-go/internal/feed"
	"wallet-client-go/internal/models"
	"wallet-client-go/internal/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil || req.Password == "" {
		writeError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := s.clock().UTC()
	access, refresh := uuid.NewString(), uuid.NewString()

	s.mu.Lock()
	s.tokens[access] = req.Email
	s.mu.Unlock()

	zap.L().Info("Emulator login", zap.String("email", req.Email))

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Auth: models.AuthTokens{
			AccessToken:        access,
			AccessTokenExpire:  now.Add(tokenTTL).Format(time.RFC3339),
			RefreshToken:       refresh,
			RefreshTokenExpire: now.Add(30 * tokenTTL).Format(time.RFC3339),
		},
	})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	wallets := make([]models.Wallet, len(s.wallets))
	copy(wallets, s.wallets)
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, wallets)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := remote.ParseTransactionQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	matched := make([]models.RawTransaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if q.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	s.mu.Unlock()

	writeEnvelope(w, http.StatusOK, feed.Paginate(matched, q.Page, q.PerPage))
}

// handleCreatePayout debits the wallet and records a pending withdrawal
func (s *Server) handleCreatePayout(w http.ResponseWriter, r *http.Request) {
	var req models.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	if r.Header.Get("Idempotency-Key") == "" {
		writeError(w, r, http.StatusBadRequest, "Missing Idempotency-Key header")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, r, http.StatusUnprocessableEntity, "Amount must be greater than 0")
		return
	}
	switch req.Provider {
	case models.ProviderCard:
	case models.ProviderBank:
		if req.BankId == nil {
			writeError(w, r, http.StatusUnprocessableEntity, "Bank account is required for bank transfers")
			return
		}
	default:
		writeError(w, r, http.StatusUnprocessableEntity, "Invalid payout method")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, wallet := range s.wallets {
		if wallet.Id == req.WalletId {
			idx = i
			break
		}
	}
	if idx < 0 || s.wallets[idx].CurrencyId != req.CurrencyId {
		writeError(w, r, http.StatusNotFound, "Wallet not found")
		return
	}
	wallet := &s.wallets[idx]
	if req.Amount.GreaterThan(wallet.AvailableBalance) {
		writeError(w, r, http.StatusUnprocessableEntity, "Amount exceeds available balance")
		return
	}

	wallet.AvailableBalance = wallet.AvailableBalance.Sub(req.Amount)
	wallet.CurrentBalance = wallet.CurrentBalance.Sub(req.Amount)

	now := s.clock().UTC()
	id := s.nextTransactionId()
	reason := req.Note
	if reason == "" {
		reason = "Payout"
	}
	tx := models.RawTransaction{
		Id:         &id,
		WalletId:   req.WalletId,
		Type:       models.TransactionWithdrawal,
		Status:     models.RawPending,
		Reason:     reason,
		Amount:     req.Amount.Neg(),
		CurrencyId: req.CurrencyId,
		CreatedAt:  now,
		Provider:   req.Provider,
		BankId:     req.BankId,
	}
	s.transactions = append([]models.RawTransaction{tx}, s.transactions...)

	s.payouts++
	p := models.Payout{
		Id:         s.payouts,
		Status:     string(models.RawPending),
		Amount:     req.Amount,
		Provider:   req.Provider,
		WalletId:   req.WalletId,
		CurrencyId: req.CurrencyId,
		CreatedAt:  now,
	}

	zap.L().Info("Emulator payout created",
		zap.Int64("payout_id", p.Id),
		zap.Int64("wallet_id", p.WalletId),
		zap.String("amount", p.Amount.String()))

	writeEnvelope(w, http.StatusCreated, p)
}

// nextTransactionId must be called with mu held
func (s *Server) nextTransactionId() int64 {
	var max int64
	for _, tx := range s.transactions {
		if tx.Id != nil && *tx.Id > max {
			max = *tx.Id
		}
	}
	return max + 1
}

func writeEnvelope[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, models.Envelope[T]{
		Data:    data,
		Status:  status,
		Type:    "success",
		Message: http.StatusText(status),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, models.APIError{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("Unable to write response", zap.Error(err))
	}
}
