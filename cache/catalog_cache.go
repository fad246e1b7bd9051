package catalog_cache

import (
	"sync"
	"time"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

const TTL = 5 * time.Minute

// ── Product list caches ──────────────────────────────────────────────────────
// The trailer and component lists come from the external store API and feed
// every listing page, cart lookups and facet derivation. Both are cached for
// a short TTL and invalidated whenever an admin mutation goes through.

type listEntry struct {
	products  []models.Product
	fetchedAt time.Time
}

var (
	trailersMu    sync.RWMutex
	trailersCache *listEntry

	componentsMu    sync.RWMutex
	componentsCache *listEntry
)

func GetTrailers() ([]models.Product, bool) {
	trailersMu.RLock()
	defer trailersMu.RUnlock()
	if trailersCache != nil && time.Since(trailersCache.fetchedAt) < TTL {
		return trailersCache.products, true
	}
	return nil, false
}

func SetTrailers(products []models.Product) {
	trailersMu.Lock()
	defer trailersMu.Unlock()
	trailersCache = &listEntry{products: products, fetchedAt: time.Now()}
}

func GetComponents() ([]models.Product, bool) {
	componentsMu.RLock()
	defer componentsMu.RUnlock()
	if componentsCache != nil && time.Since(componentsCache.fetchedAt) < TTL {
		return componentsCache.products, true
	}
	return nil, false
}

func SetComponents(products []models.Product) {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	componentsCache = &listEntry{products: products, fetchedAt: time.Now()}
}

// ── Invalidate everything (call after any admin create/update/delete) ────────
// Only confirmed server-side mutations invalidate; the UI never shows a list
// the server did not persist.

func Invalidate() {
	trailersMu.Lock()
	trailersCache = nil
	trailersMu.Unlock()

	componentsMu.Lock()
	componentsCache = nil
	componentsMu.Unlock()
}
