package server

import (
	"sort"
	"sync"

	"github.com/dgnsrekt/gammaflip/internal/gex"
)

// Store keeps the latest analysis result per ticker. Results are replaced
// whole on refresh and never mutated, so readers can hold them after the
// lock is released.
type Store struct {
	mu      sync.RWMutex
	results map[string]*gex.Result
}

func NewStore() *Store {
	return &Store{results: make(map[string]*gex.Result)}
}

func (s *Store) Set(ticker string, res *gex.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[ticker] = res
}

func (s *Store) Get(ticker string) (*gex.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[ticker]
	return res, ok
}

// Tickers returns the tickers with a result available, sorted.
func (s *Store) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickers := make([]string, 0, len(s.results))
	for t := range s.results {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
