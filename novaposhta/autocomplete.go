package novaposhta

import (
	"context"
	"sync"
	"time"
)

// DebounceDelay is how long the autocomplete waits after the last keystroke
// before issuing a search.
const DebounceDelay = 300 * time.Millisecond

// CitySearcher is the lookup the autocomplete drives; satisfied by *Client.
type CitySearcher interface {
	SearchCities(ctx context.Context, query string) ([]City, error)
}

// Autocomplete debounces city-search input and guarantees that only the
// newest query's outcome reaches the callbacks: every Input call bumps a
// sequence number, and a lookup whose number is stale by the time it
// finishes is discarded. The transport gives no ordering guarantee, so this
// guard is the only thing keeping an abandoned query's slow response from
// overwriting the current one.
type Autocomplete struct {
	mu       sync.Mutex
	searcher CitySearcher
	delay    time.Duration
	timer    *time.Timer
	seq      uint64

	onResults func([]City)
	onError   func(error)
}

func NewAutocomplete(searcher CitySearcher, onResults func([]City), onError func(error)) *Autocomplete {
	return &Autocomplete{
		searcher:  searcher,
		delay:     DebounceDelay,
		onResults: onResults,
		onError:   onError,
	}
}

// Input feeds the current contents of the city text box. Short inputs clear
// the suggestion list immediately and cancel any pending lookup.
func (a *Autocomplete) Input(text string) {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if len([]rune(text)) < MinQueryLength {
		a.onResults(nil)
		a.mu.Unlock()
		return
	}
	a.timer = time.AfterFunc(a.delay, func() { a.lookup(seq, text) })
	a.mu.Unlock()
}

func (a *Autocomplete) lookup(seq uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cities, err := a.searcher.SearchCities(ctx, text)

	// The staleness check and the callback must happen under the same lock
	// acquisition: a concurrent Input between them could clear or replace
	// the suggestions, and delivering afterwards would resurrect this
	// query's results. Callbacks must not call back into the Autocomplete.
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		return
	}
	if err != nil {
		a.onError(err)
		return
	}
	a.onResults(cities)
}

// Close cancels any pending lookup and marks in-flight ones stale. Call it
// when the owning form is torn down.
func (a *Autocomplete) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
