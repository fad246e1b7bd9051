// Package session keeps one browser's storefront state between requests:
// navigation, cart, favorites, the auth token and the active checkout
// wizard. The durable subset (token, cart, favorites) can be persisted to
// redis so a returning browser finds them again, the way the SPA kept them
// in localStorage.
package session

import (
	"sync"
	"time"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/cart"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/checkout"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/navigation"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/novaposhta"
)

type Session struct {
	ID        string
	Router    *navigation.Router
	Cart      *cart.Store
	Favorites *cart.Favorites

	mu              sync.RWMutex
	token           string
	user            *models.User
	wizard          *checkout.Wizard
	cityLookup      *novaposhta.Autocomplete
	citySuggestions []novaposhta.City
	cityLookupError string
	lastSeen        time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		Router:    navigation.NewRouter("/"),
		Cart:      cart.NewStore(),
		Favorites: cart.NewFavorites(),
		lastSeen:  time.Now(),
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// ClearAuth drops the token and cached user on logout.
func (s *Session) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Wizard() *checkout.Wizard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wizard
}

func (s *Session) SetWizard(w *checkout.Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizard = w
}

// ClearWizard discards the checkout flow (successful submit, or the
// customer navigated away).
func (s *Session) ClearWizard() {
	s.mu.Lock()
	s.wizard = nil
	lookup := s.cityLookup
	s.cityLookup = nil
	s.citySuggestions = nil
	s.cityLookupError = ""
	s.mu.Unlock()
	// Closed outside the lock: the autocomplete delivers results while
	// holding its own mutex, and those callbacks take this session's.
	if lookup != nil {
		lookup.Close()
	}
}

// CityLookup returns the session's city autocomplete, creating it on first
// use via build.
func (s *Session) CityLookup(build func() *novaposhta.Autocomplete) *novaposhta.Autocomplete {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cityLookup == nil {
		s.cityLookup = build()
	}
	return s.cityLookup
}

// SetCitySuggestions stores the latest autocomplete outcome; the two fields
// change together so the UI never shows a stale error next to fresh results.
func (s *Session) SetCitySuggestions(cities []novaposhta.City, lookupErr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.citySuggestions = cities
	s.cityLookupError = lookupErr
}

func (s *Session) CitySuggestions() ([]novaposhta.City, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.citySuggestions, s.cityLookupError
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// LastSeen reports when the session last served a request.
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}
