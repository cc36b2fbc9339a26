package remote

import (
	"net/url"
	"testing"
	"time"

	"wallet-client-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestValues_Defaults(t *testing.T) {
	v := TransactionQuery{}.Values()
	if v.Encode() != "page=1&per_page=15" {
		t.Errorf("Unexpected default query %s", v.Encode())
	}
}

func TestParseTransactionQuery_RoundTrip(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 5, 18, 30, 0, 0, time.UTC)
	q := TransactionQuery{
		Page:     3,
		PerPage:  15,
		WalletId: 2,
		Type:     models.TransactionTopUp,
		Status:   models.RawPending,
		DateFrom: &from,
		DateTo:   &to,
	}

	parsed, err := ParseTransactionQuery(q.Values())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Page != 3 || parsed.WalletId != 2 || parsed.Type != q.Type || parsed.Status != q.Status {
		t.Errorf("Unexpected parsed query %+v", parsed)
	}
	if !parsed.DateFrom.Equal(from) || !parsed.DateTo.Equal(to) {
		t.Errorf("Unexpected dates %s %s", parsed.DateFrom, parsed.DateTo)
	}
}

func TestParseTransactionQuery_Invalid(t *testing.T) {
	tests := []url.Values{
		{"page": {"0"}},
		{"per_page": {"x"}},
		{"type": {"fee"}},
		{"status": {"declined"}},
		{"date_from": {"yesterday"}},
		{"wallet_id": {"abc"}},
	}
	for _, v := range tests {
		if _, err := ParseTransactionQuery(v); err == nil {
			t.Errorf("Expected error for %s", v.Encode())
		}
	}
}

func TestMatches(t *testing.T) {
	at := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	tx := models.RawTransaction{
		WalletId:  1,
		Type:      models.TransactionWithdrawal,
		Status:    models.RawFailed,
		Amount:    decimal.NewFromInt(-10),
		CreatedAt: at,
	}

	before := at.Add(-time.Hour)
	after := at.Add(time.Hour)

	tests := []struct {
		name  string
		query TransactionQuery
		want  bool
	}{
		{"empty", TransactionQuery{}, true},
		{"type match", TransactionQuery{Type: models.TransactionWithdrawal}, true},
		{"type mismatch", TransactionQuery{Type: models.TransactionTopUp}, false},
		{"status match", TransactionQuery{Status: models.RawFailed}, true},
		{"status mismatch", TransactionQuery{Status: models.RawCompleted}, false},
		{"wallet mismatch", TransactionQuery{WalletId: 2}, false},
		{"inside range", TransactionQuery{DateFrom: &before, DateTo: &after}, true},
		{"inclusive bounds", TransactionQuery{DateFrom: &at, DateTo: &at}, true},
		{"after range", TransactionQuery{DateTo: &before}, false},
		{"before range", TransactionQuery{DateFrom: &after}, false},
	}
	for _, tt := range tests {
		if got := tt.query.Matches(tx); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); got != "2025-03-01" {
		t.Errorf("Expected calendar date, got %s", got)
	}
	if got := FormatDate(time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC)); got != "2025-03-01T09:15:00Z" {
		t.Errorf("Expected RFC3339, got %s", got)
	}
}
