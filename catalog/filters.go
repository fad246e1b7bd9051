// Package catalog derives the visible product subset and the available
// facet values from the full in-memory product list.
package catalog

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// FilterState mirrors the listing page's filter panel. The zero value is
// the all-default state that filters nothing out. Min/max prices stay as
// the raw input strings; a value that does not parse as a number is simply
// an inactive bound.
type FilterState struct {
	SearchQuery    string   `json:"searchQuery"`
	MinPrice       string   `json:"minPrice"`
	MaxPrice       string   `json:"maxPrice"`
	Brands         []string `json:"brands"`
	ComponentTypes []string `json:"componentTypes"`
	InStockOnly    bool     `json:"inStockOnly"`
}

// NewFilterState returns the all-default state.
func NewFilterState() FilterState {
	return FilterState{}
}

// Reset restores every field to its default in a single assignment, so no
// reader ever observes a half-reset state.
func (f *FilterState) Reset() {
	*f = FilterState{}
}

// ApplyFilters returns the products passing every active filter dimension.
// Dimensions combine with AND; within the brand and type sets membership is
// OR. The result is always a subset of products, and the all-default state
// returns the input unchanged (modulo the fresh slice).
func ApplyFilters(products []models.Product, f FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p models.Product, f FilterState) bool {
	if f.SearchQuery != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.SearchQuery)) {
		return false
	}
	if min, err := strconv.ParseFloat(f.MinPrice, 64); err == nil && p.Price < min {
		return false
	}
	if max, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil && p.Price > max {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if len(f.ComponentTypes) > 0 && !slices.Contains(f.ComponentTypes, p.SubCategory) {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	return true
}

// ByCategory keeps only products of the given top-level category. The
// trailers landing page and the components listing each scope their list
// with this before filtering.
func ByCategory(products []models.Product, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// DistinctBrands collects the unique non-empty brand values, sorted, for the
// filter checkboxes. A nil or empty list yields an empty slice, not an error.
func DistinctBrands(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.Brand })
}

// DistinctSubcategories does the same for subcategory values.
func DistinctSubcategories(products []models.Product) []string {
	return distinct(products, func(p models.Product) string { return p.SubCategory })
}

func distinct(products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		if v := key(p); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
