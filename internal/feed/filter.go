package feed

import (
	"strings"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/remote"
)

// BuildQuery turns a scope into the server-side query for page.
// Unfiltered scopes only carry pagination.
func BuildQuery(scope Scope, page int) remote.TransactionQuery {
	q := remote.TransactionQuery{Page: page, PerPage: PageSize}

	filtered, ok := scope.(Filtered)
	if !ok {
		return q
	}
	f := filtered.Filter

	switch f.Type {
	case models.FilterIn:
		q.Type = models.TransactionTopUp
	case models.FilterOut:
		q.Type = models.TransactionWithdrawal
	}

	q.DateFrom = f.DateFrom
	q.DateTo = f.DateTo

	// The API only takes one status; several are resolved locally
	if len(f.Statuses) == 1 {
		switch f.Statuses[0] {
		case models.StatusCompleted:
			q.Status = models.RawCompleted
		case models.StatusPending:
			q.Status = models.RawPending
		case models.StatusDeclined, models.StatusCanceled:
			q.Status = models.RawFailed
		}
	}

	return q
}

// MatchesStatus reports whether status satisfies any requested value.
// "canceled" is matched against itself only, which the normalizer never
// produces; "failed" covers declined and canceled.
func MatchesStatus(requested []models.Status, status models.Status) bool {
	for _, v := range requested {
		if v == status {
			return true
		}
		if v == models.StatusCanceled && status == models.StatusCanceled {
			return true
		}
		if v == models.StatusFailed && (status == models.StatusDeclined || status == models.StatusCanceled) {
			return true
		}
	}
	return false
}

// matchesDisplay applies the filters the API has no equivalent for
func matchesDisplay(f models.Filter, tx models.NormalizedTransaction) bool {
	if f.Type == models.FilterFee && (tx.Type == models.TransactionTopUp || tx.Type == models.TransactionWithdrawal) {
		return false
	}
	if f.Currency != "" && !strings.EqualFold(tx.Currency, f.Currency) {
		return false
	}
	if len(f.Statuses) > 0 && !MatchesStatus(f.Statuses, tx.Status) {
		return false
	}
	return true
}

// ApplyDisplayFilters filters normalized records for Filtered scopes and
// returns the input untouched otherwise.
func ApplyDisplayFilters(scope Scope, txs []models.NormalizedTransaction) []models.NormalizedTransaction {
	filtered, ok := scope.(Filtered)
	if !ok {
		return txs
	}

	out := make([]models.NormalizedTransaction, 0, len(txs))
	for _, tx := range txs {
		if matchesDisplay(filtered.Filter, tx) {
			out = append(out, tx)
		}
	}
	return out
}
