package feed

import "wallet-client-go/internal/models"

// Screen identifies the caller context a page is requested for
type Screen string

const (
	ScreenWalletHome   Screen = "wallet"
	ScreenTransactions Screen = "transactions"
)

// Scope decides whether the active filter applies to a fetch.
// It is either Unfiltered or Filtered.
type Scope interface {
	scope()
}

// Unfiltered always requests the full feed
type Unfiltered struct{}

// Filtered applies Filter server-side where possible and locally otherwise
type Filtered struct {
	Filter models.Filter
}

func (Unfiltered) scope() {}
func (Filtered) scope()   {}

// ScopeFor maps a screen to its scope. The wallet home always shows the
// unfiltered feed, every other screen honours the filter.
func ScopeFor(screen Screen, filter models.Filter) Scope {
	if screen == ScreenWalletHome {
		return Unfiltered{}
	}
	return Filtered{Filter: filter}
}
