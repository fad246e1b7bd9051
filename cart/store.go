// Package cart holds one session's cart lines and favorite ids. Every
// mutation is a single atomic update under the lock; readers never observe
// a partially applied action.
package cart

import (
	"sort"
	"sync"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// Store is the cart. Adding an already-present product bumps its quantity;
// decreasing at quantity one removes the line.
type Store struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// Add puts a product in the cart, merging with an existing line.
func (s *Store) Add(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			return
		}
	}
	item := models.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		Currency:  p.Currency,
		Quantity:  1,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	s.items = append(s.items, item)
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) Increase(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity++
			return
		}
	}
}

// Decrease lowers a line's quantity, removing the line when it hits zero.
func (s *Store) Decrease(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			if s.items[i].Quantity > 1 {
				s.items[i].Quantity--
			} else {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			return
		}
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Snapshot returns a copy of the current lines.
func (s *Store) Snapshot() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price*quantity across all lines.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the number of distinct lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps in a previously persisted set of lines (session restore).
func (s *Store) Replace(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]models.CartItem, len(items))
	copy(s.items, items)
}

// Favorites tracks which product ids the customer starred.
type Favorites struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewFavorites() *Favorites {
	return &Favorites{ids: make(map[string]struct{})}
}

// Toggle flips a product's favorite state and returns the new state.
func (f *Favorites) Toggle(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[productID]; ok {
		delete(f.ids, productID)
		return false
	}
	f.ids[productID] = struct{}{}
	return true
}

func (f *Favorites) Has(productID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[productID]
	return ok
}

// IDs returns the favorited ids, sorted for stable output.
func (f *Favorites) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Replace swaps in a previously persisted id set (session restore).
func (f *Favorites) Replace(ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
}
