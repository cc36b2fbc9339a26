package feed

import (
	"context"
	"sync"

	"wallet-client-go/internal/models"
	"wallet-client-go/internal/normalizer"
)

// View is what a transaction list shows after normalization and filtering
type View struct {
	Transactions []models.NormalizedTransaction
	HasMore      bool
	Total        int
}

// Session accumulates pages for one scope across "load more" calls
type Session struct {
	controller *Controller
	scope      Scope
	wallets    []models.Wallet

	mu    sync.Mutex
	pages []*models.TransactionsPage
}

// NewSession starts an empty session. wallets is optional and only
// used for reference enrichment.
func (c *Controller) NewSession(scope Scope, wallets []models.Wallet) *Session {
	return &Session{
		controller: c,
		scope:      scope,
		wallets:    wallets,
	}
}

// LoadFirst drops accumulated pages and fetches page 1
func (s *Session) LoadFirst(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.controller.FetchPage(ctx, s.scope, 1)
	if err != nil {
		return s.view(), err
	}
	s.pages = []*models.TransactionsPage{page}
	return s.view(), nil
}

// LoadMore fetches the page after the last one. It is a no-op when the
// last page reported no more data.
func (s *Session) LoadMore(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pages) == 0 {
		page, err := s.controller.FetchPage(ctx, s.scope, 1)
		if err != nil {
			return s.view(), err
		}
		s.pages = append(s.pages, page)
		return s.view(), nil
	}

	last := s.pages[len(s.pages)-1]
	if !last.HasMore {
		return s.view(), nil
	}

	page, err := s.controller.FetchPage(ctx, s.scope, last.CurrentPage+1)
	if err != nil {
		return s.view(), err
	}
	s.pages = append(s.pages, page)
	return s.view(), nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

func (s *Session) view() View {
	if len(s.pages) == 0 {
		return View{Transactions: []models.NormalizedTransaction{}}
	}

	var raw []models.RawTransaction
	for _, p := range s.pages {
		raw = append(raw, p.Items...)
	}

	return View{
		Transactions: ApplyDisplayFilters(s.scope, normalizer.NormalizeAll(raw, s.wallets)),
		HasMore:      s.pages[len(s.pages)-1].HasMore,
		Total:        s.pages[0].Total,
	}
}
