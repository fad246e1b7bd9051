package novaposhta

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSearcher struct {
	mu      sync.Mutex
	queries []string
	results map[string][]City
	delays  map[string]time.Duration
	err     error
}

func (s *scriptedSearcher) SearchCities(ctx context.Context, query string) ([]City, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	delay := s.delays[query]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[query], nil
}

func (s *scriptedSearcher) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

type resultRecorder struct {
	mu      sync.Mutex
	batches [][]City
	errs    []error
}

func (r *resultRecorder) onResults(cities []City) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, cities)
}

func (r *resultRecorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *resultRecorder) last() []City {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil
	}
	return r.batches[len(r.batches)-1]
}

func (r *resultRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func newTestAutocomplete(s CitySearcher, rec *resultRecorder, delay time.Duration) *Autocomplete {
	a := NewAutocomplete(s, rec.onResults, rec.onError)
	a.delay = delay
	return a
}

func TestDebounceOnlyLastKeystrokeSearches(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string][]City{
		"Київ": {{Description: "м. Київ", Ref: "city-kyiv"}},
	}}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 20*time.Millisecond)
	defer a.Close()

	// Rapid typing: each keystroke within the debounce window cancels the
	// previous pending lookup.
	a.Input("Ки")
	a.Input("Киї")
	a.Input("Київ")

	require.Eventually(t, func() bool { return rec.count() > 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"Київ"}, searcher.seen())
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "city-kyiv", rec.last()[0].Ref)
}

func TestShortInputClearsImmediately(t *testing.T) {
	searcher := &scriptedSearcher{}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 5*time.Millisecond)
	defer a.Close()

	a.Input("К")

	// The clear is synchronous, no debounce wait.
	assert.Equal(t, 1, rec.count())
	assert.Nil(t, rec.last())
	assert.Empty(t, searcher.seen())
}

func TestShortInputCancelsPendingLookup(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string][]City{
		"Київ": {{Ref: "city-kyiv"}},
	}}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 20*time.Millisecond)
	defer a.Close()

	a.Input("Київ")
	a.Input("К") // cleared the field before the debounce fired

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, searcher.seen())
	assert.Equal(t, 1, rec.count())
	assert.Nil(t, rec.last())
}

func TestStaleResponseDiscarded(t *testing.T) {
	searcher := &scriptedSearcher{
		results: map[string][]City{
			"Львів":  {{Ref: "city-lviv"}},
			"Харків": {{Ref: "city-kharkiv"}},
		},
		// The first query's response arrives after the second query has
		// already been issued.
		delays: map[string]time.Duration{"Львів": 80 * time.Millisecond},
	}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 5*time.Millisecond)
	defer a.Close()

	a.Input("Львів")
	time.Sleep(20 * time.Millisecond) // let the slow lookup start
	a.Input("Харків")

	require.Eventually(t, func() bool { return rec.count() > 0 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond) // give the stale response time to (not) land

	assert.Equal(t, 1, rec.count())
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "city-kharkiv", rec.last()[0].Ref)
}

func TestShortInputDuringDeliveryCannotBeOverwritten(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string][]City{
		"Київ": {{Ref: "city-kyiv"}},
	}}
	rec := &resultRecorder{}

	// Block inside the first delivery so a concurrent clear races with it.
	entered := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	onResults := func(cities []City) {
		once.Do(func() {
			close(entered)
			<-gate
		})
		rec.onResults(cities)
	}
	a := NewAutocomplete(searcher, onResults, rec.onError)
	a.delay = time.Millisecond
	defer a.Close()

	a.Input("Київ")
	<-entered

	cleared := make(chan struct{})
	go func() {
		a.Input("К")
		close(cleared)
	}()

	// The synchronous clear must not slip in between the staleness check and
	// the in-progress delivery; it has to land after it.
	select {
	case <-cleared:
		t.Fatal("short-input clear interleaved with an in-flight delivery")
	case <-time.After(30 * time.Millisecond):
	}

	close(gate)
	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("short-input clear never delivered")
	}

	require.Equal(t, 2, rec.count())
	assert.Nil(t, rec.last())
}

func TestLookupErrorReachesErrorCallback(t *testing.T) {
	searcher := &scriptedSearcher{err: errors.New("api down")}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 5*time.Millisecond)
	defer a.Close()

	a.Input("Київ")

	require.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.errs) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestCloseCancelsPendingLookup(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string][]City{"Київ": {{Ref: "city-kyiv"}}}}
	rec := &resultRecorder{}
	a := newTestAutocomplete(searcher, rec, 20*time.Millisecond)

	a.Input("Київ")
	a.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, searcher.seen())
	assert.Equal(t, 0, rec.count())
}
