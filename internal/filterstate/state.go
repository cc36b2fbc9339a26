package filterstate

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"wallet-client-go/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// State holds the active transaction filter for the session.
// Values are not validated; an inverted date range simply matches nothing.
type State struct {
	mu     sync.RWMutex
	filter models.Filter
}

// Option is one partial update applied by Set
type Option func(*models.Filter)

func New() *State {
	return &State{filter: models.DefaultFilter()}
}

func WithType(t models.FilterType) Option {
	return func(f *models.Filter) { f.Type = t }
}

// WithCurrency stores the code upper-cased, the form wallets report
func WithCurrency(code string) Option {
	code = strings.ToUpper(strings.TrimSpace(code))
	return func(f *models.Filter) { f.Currency = code }
}

func WithDateFrom(from time.Time) Option {
	return func(f *models.Filter) { f.DateFrom = &from }
}

func WithDateTo(to time.Time) Option {
	return func(f *models.Filter) { f.DateTo = &to }
}

func WithDateRange(from, to time.Time) Option {
	return func(f *models.Filter) {
		f.DateFrom = &from
		f.DateTo = &to
	}
}

func WithStatuses(statuses ...models.Status) Option {
	return func(f *models.Filter) { f.Statuses = slices.Clone(statuses) }
}

func ClearCurrency() Option {
	return func(f *models.Filter) { f.Currency = "" }
}

func ClearDates() Option {
	return func(f *models.Filter) {
		f.DateFrom = nil
		f.DateTo = nil
	}
}

func ClearStatuses() Option {
	return func(f *models.Filter) { f.Statuses = nil }
}

// Set merges the given fields into the current filter
func (s *State) Set(opts ...Option) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, opt := range opts {
		opt(&s.filter)
	}
}

func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = models.DefaultFilter()
}

// Current returns a copy safe to keep across later updates
func (s *State) Current() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.filter)
}

func clone(f models.Filter) models.Filter {
	out := f
	out.Statuses = slices.Clone(f.Statuses)
	if f.DateFrom != nil {
		from := *f.DateFrom
		out.DateFrom = &from
	}
	if f.DateTo != nil {
		to := *f.DateTo
		out.DateTo = &to
	}
	return out
}

// Load reads a saved filter. A missing file yields the default filter.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read filter file: %w", err)
	}

	filter := models.DefaultFilter()
	if err := yaml.Unmarshal(data, &filter); err != nil {
		return nil, fmt.Errorf("unable to parse filter file %s: %w", path, err)
	}
	if filter.Type == "" {
		filter.Type = models.FilterAll
	}

	return &State{filter: filter}, nil
}

// Save writes the current filter as YAML
func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s.Current())
	if err != nil {
		return fmt.Errorf("unable to encode filter: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("unable to write filter file: %w", err)
	}

	zap.L().Debug("Filter saved", zap.String("file", path))
	return nil
}

// Remove deletes a saved filter file; a missing file is not an error
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("unable to remove filter file: %w", err)
	}
	return nil
}
