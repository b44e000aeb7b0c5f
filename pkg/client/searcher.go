package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSearchDelay is the quiet period before a typed query is sent.
const DefaultSearchDelay = 500 * time.Millisecond

// SearchFunc runs one search.
type SearchFunc func(ctx context.Context, query string) ([]Food, error)

// SearchResult is the outcome of one delivered query.
type SearchResult struct {
	Query string
	Foods []Food
	Err   error
}

// Searcher debounces food search as a user types. Each Query restarts the
// quiet period and cancels any request still in flight; only the result of
// the most recent query is ever delivered.
type Searcher struct {
	search SearchFunc
	delay  time.Duration

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	results chan SearchResult
}

// NewSearcher creates a searcher around fn. A delay of 0 uses
// DefaultSearchDelay.
func NewSearcher(fn SearchFunc, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Searcher{
		search:  fn,
		delay:   delay,
		results: make(chan SearchResult, 1),
	}
}

// FoodSearcher returns a Searcher backed by SearchFoods.
func (c *Client) FoodSearcher(limit int, delay time.Duration) *Searcher {
	return NewSearcher(func(ctx context.Context, q string) ([]Food, error) {
		return c.SearchFoods(ctx, q, limit)
	}, delay)
}

// Results delivers search outcomes. An unread result is replaced by a newer
// one. The channel is closed by Close.
func (s *Searcher) Results() <-chan SearchResult {
	return s.results
}

// Query schedules a search for q. A blank query cancels pending work and
// delivers an empty result straight away.
func (s *Searcher) Query(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.seq++
	s.stopLocked()

	q = strings.TrimSpace(q)
	if q == "" {
		s.deliverLocked(SearchResult{})
		return
	}

	seq := s.seq
	s.timer = time.AfterFunc(s.delay, func() { s.run(seq, q) })
}

func (s *Searcher) run(seq uint64, q string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	foods, err := s.search(ctx, q)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		return
	}
	s.cancel = nil
	s.deliverLocked(SearchResult{Query: q, Foods: foods, Err: err})
}

func (s *Searcher) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) deliverLocked(r SearchResult) {
	select {
	case <-s.results:
	default:
	}
	s.results <- r
}

// Close cancels pending work and closes Results.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopLocked()
	close(s.results)
}
