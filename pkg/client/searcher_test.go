package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	mu       sync.Mutex
	queries  []string
	canceled []string
	started  chan string
}

func newFakeSearch() *fakeSearch {
	return &fakeSearch{started: make(chan string, 8)}
}

func (f *fakeSearch) run(ctx context.Context, q string) ([]Food, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	f.started <- q

	if q == "slow" {
		<-ctx.Done()
		f.mu.Lock()
		f.canceled = append(f.canceled, q)
		f.mu.Unlock()
		return nil, ctx.Err()
	}
	return []Food{{Name: q}}, nil
}

func (f *fakeSearch) seen() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...), append([]string(nil), f.canceled...)
}

func receive(t *testing.T, s *Searcher) SearchResult {
	t.Helper()
	select {
	case r := <-s.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no search result delivered")
		return SearchResult{}
	}
}

func assertQuiet(t *testing.T, s *Searcher) {
	t.Helper()
	select {
	case r := <-s.Results():
		t.Fatalf("unexpected result for %q", r.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearcherDebouncesToLatestQuery(t *testing.T) {
	fake := newFakeSearch()
	s := NewSearcher(fake.run, 30*time.Millisecond)
	defer s.Close()

	s.Query("c")
	s.Query("ch")
	s.Query("chicken")

	r := receive(t, s)
	assert.Equal(t, "chicken", r.Query)
	require.NoError(t, r.Err)
	require.Len(t, r.Foods, 1)

	queries, _ := fake.seen()
	assert.Equal(t, []string{"chicken"}, queries)
	assertQuiet(t, s)
}

func TestSearcherCancelsInFlightRequest(t *testing.T) {
	fake := newFakeSearch()
	s := NewSearcher(fake.run, 10*time.Millisecond)
	defer s.Close()

	s.Query("slow")
	select {
	case q := <-fake.started:
		require.Equal(t, "slow", q)
	case <-time.After(2 * time.Second):
		t.Fatal("slow search never started")
	}

	s.Query("rice")
	r := receive(t, s)
	assert.Equal(t, "rice", r.Query)
	assert.NoError(t, r.Err)

	require.Eventually(t, func() bool {
		_, canceled := fake.seen()
		return len(canceled) == 1
	}, time.Second, 10*time.Millisecond)
	assertQuiet(t, s)
}

func TestSearcherBlankQueryClearsResults(t *testing.T) {
	fake := newFakeSearch()
	s := NewSearcher(fake.run, time.Hour)
	defer s.Close()

	s.Query("oats")
	s.Query("   ")

	r := receive(t, s)
	assert.Empty(t, r.Query)
	assert.Empty(t, r.Foods)

	queries, _ := fake.seen()
	assert.Empty(t, queries)
}

func TestSearcherClose(t *testing.T) {
	s := NewSearcher(newFakeSearch().run, 0)
	s.Close()
	s.Close()
	s.Query("ignored")

	_, ok := <-s.Results()
	assert.False(t, ok)
}
