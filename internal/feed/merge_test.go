package feed

import (
	"fmt"
	"testing"
	"time"

	"wallet-client-go/internal/models"

	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// rawTx builds a top-up whose created_at grows with id
func rawTx(id int64) models.RawTransaction {
	return models.RawTransaction{
		Id:         &id,
		WalletId:   1,
		Type:       models.TransactionTopUp,
		Status:     models.RawCompleted,
		Reason:     fmt.Sprintf("tx %d", id),
		Amount:     decimal.NewFromInt(id),
		CurrencyId: 1,
		CreatedAt:  baseTime.Add(time.Duration(id) * time.Minute),
	}
}

func rawTxs(ids ...int64) []models.RawTransaction {
	out := make([]models.RawTransaction, len(ids))
	for i, id := range ids {
		out[i] = rawTx(id)
	}
	return out
}

func ids(txs []models.RawTransaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = *tx.Id
	}
	return out
}

func equalIds(a, b []int64) bool {
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

func TestMergeTransactions_Union(t *testing.T) {
	merged := MergeTransactions(rawTxs(1, 2, 3), rawTxs(3, 4, 5), 50)

	if got := ids(merged); !equalIds(got, []int64{5, 4, 3, 2, 1}) {
		t.Errorf("Expected [5 4 3 2 1], got %v", got)
	}
}

func TestMergeTransactions_Idempotent(t *testing.T) {
	batch := rawTxs(7, 3, 9)

	once := MergeTransactions(rawTxs(1, 2), batch, 50)
	twice := MergeTransactions(once, batch, 50)

	if !equalIds(ids(once), ids(twice)) {
		t.Errorf("Expected idempotent merge, got %v then %v", ids(once), ids(twice))
	}
}

func TestMergeTransactions_AdditiveOnly(t *testing.T) {
	cached := rawTxs(1)
	cached[0].Status = models.RawPending

	fetched := rawTxs(1)
	fetched[0].Status = models.RawCompleted

	merged := MergeTransactions(cached, fetched, 50)
	if len(merged) != 1 || merged[0].Status != models.RawPending {
		t.Errorf("Expected cached copy to be kept, got %+v", merged)
	}
}

func TestMergeTransactions_DedupesWithinBatch(t *testing.T) {
	merged := MergeTransactions(nil, rawTxs(4, 4, 2), 50)
	if got := ids(merged); !equalIds(got, []int64{4, 2}) {
		t.Errorf("Expected [4 2], got %v", got)
	}
}

func TestMergeTransactions_FallbackIdentity(t *testing.T) {
	a := rawTx(1)
	a.Id = nil
	b := rawTx(2)
	b.Id = nil

	merged := MergeTransactions([]models.RawTransaction{a}, []models.RawTransaction{a, b}, 50)
	if len(merged) != 2 {
		t.Errorf("Expected records without ids to merge by wallet and timestamp, got %d", len(merged))
	}
}

func TestMergeTransactions_CapKeepsMostRecent(t *testing.T) {
	var cached []models.RawTransaction

	// Batches arrive out of order; the cache must still hold the 50 newest
	batches := [][]int64{}
	for start := int64(100); start > 0; start -= 15 {
		var batch []int64
		for id := start; id > start-15 && id > 0; id-- {
			batch = append(batch, id)
		}
		batches = append(batches, batch)
	}
	batches = append(batches, []int64{120, 119, 5})

	for _, batch := range batches {
		cached = MergeTransactions(cached, rawTxs(batch...), 50)
		if len(cached) > 50 {
			t.Fatalf("Cache exceeded cap: %d", len(cached))
		}
	}

	if len(cached) != 50 {
		t.Fatalf("Expected 50 entries, got %d", len(cached))
	}
	if *cached[0].Id != 120 || *cached[1].Id != 119 || *cached[2].Id != 100 || *cached[49].Id != 53 {
		t.Errorf("Unexpected retained window %v", ids(cached))
	}
}

func TestPaginate_Boundaries(t *testing.T) {
	tests := []struct {
		total     int
		page      int
		wantLen   int
		wantFirst int64
		wantMore  bool
		wantLast  int
	}{
		{0, 1, 0, 0, false, 0},
		{14, 1, 14, 1, false, 1},
		{15, 1, 15, 1, false, 1},
		{16, 1, 15, 1, true, 2},
		{16, 2, 1, 16, false, 2},
		{31, 2, 15, 16, true, 3},
		{31, 3, 1, 31, false, 3},
		{31, 4, 0, 0, false, 3},
	}

	for _, tt := range tests {
		items := make([]models.RawTransaction, tt.total)
		for i := range items {
			items[i] = rawTx(int64(i + 1))
		}

		p := Paginate(items, tt.page, PageSize)
		if len(p.Items) != tt.wantLen || p.HasMore != tt.wantMore || p.LastPage != tt.wantLast || p.Total != tt.total {
			t.Errorf("N=%d page=%d: got len=%d more=%v last=%d total=%d", tt.total, tt.page, len(p.Items), p.HasMore, p.LastPage, p.Total)
			continue
		}
		if tt.wantLen > 0 && *p.Items[0].Id != tt.wantFirst {
			t.Errorf("N=%d page=%d: expected first id %d, got %d", tt.total, tt.page, tt.wantFirst, *p.Items[0].Id)
		}
		if p.CurrentPage != tt.page || p.PerPage != PageSize {
			t.Errorf("N=%d page=%d: unexpected page header %+v", tt.total, tt.page, p)
		}
	}
}
