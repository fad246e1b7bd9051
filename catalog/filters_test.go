package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID: "t1", Name: "Причіп легковий Кремень ПЛ-2", Slug: "prychip-lehkovyy-kremen-pl-2",
			Brand: "Кремень", Category: models.CategoryTrailers, Price: 35900, InStock: true,
		},
		{
			ID: "t2", Name: "Причіп Лев 210", Slug: "prychip-lev-210",
			Brand: "Лев", Category: models.CategoryTrailers, Price: 42000, InStock: true,
		},
		{
			ID: "t3", Name: "Причіп Кремень ПЛ-3 борт", Slug: "prychip-kremen-pl-3",
			Brand: "Кремень", Category: models.CategoryTrailers, Price: 51500, InStock: false,
		},
		{
			ID: "c1", Name: "Колесо 155/70 R13", Slug: "koleso-155-70-r13",
			Brand: "Premiorri", Category: models.CategoryComponents, SubCategory: "Колеса",
			Price: 1850, InStock: true,
		},
		{
			ID: "c2", Name: "Зчіпний пристрій", Slug: "zchipnyy-prystriy",
			Brand: "Knott", Category: models.CategoryComponents, SubCategory: "Зчіпні пристрої",
			Price: 3200, InStock: false,
		},
	}
}

func TestApplyFiltersDefaultStateKeepsEverything(t *testing.T) {
	products := sampleProducts()
	got := ApplyFilters(products, NewFilterState())
	assert.Equal(t, products, got)
}

func TestApplyFiltersBrandAndStock(t *testing.T) {
	products := ByCategory(sampleProducts(), models.CategoryTrailers)

	got := ApplyFilters(products, FilterState{
		Brands:      []string{"Кремень"},
		InStockOnly: true,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestApplyFiltersSearchIsCaseInsensitiveSubstring(t *testing.T) {
	products := sampleProducts()

	got := ApplyFilters(products, FilterState{SearchQuery: "лев"})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	got = ApplyFilters(products, FilterState{SearchQuery: "КОЛЕСО"})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestApplyFiltersPriceBounds(t *testing.T) {
	products := ByCategory(sampleProducts(), models.CategoryTrailers)

	got := ApplyFilters(products, FilterState{MinPrice: "40000"})
	assert.Len(t, got, 2)

	got = ApplyFilters(products, FilterState{MinPrice: "40000", MaxPrice: "45000"})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	// Boundary values are inclusive.
	got = ApplyFilters(products, FilterState{MinPrice: "35900", MaxPrice: "35900"})
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestApplyFiltersUnparseablePriceIsInactive(t *testing.T) {
	products := sampleProducts()

	got := ApplyFilters(products, FilterState{MinPrice: "abc", MaxPrice: ""})
	assert.Equal(t, products, got)
}

func TestApplyFiltersTypeSetIsUnionWithin(t *testing.T) {
	products := ByCategory(sampleProducts(), models.CategoryComponents)

	got := ApplyFilters(products, FilterState{
		ComponentTypes: []string{"Колеса", "Зчіпні пристрої"},
	})
	assert.Len(t, got, 2)

	got = ApplyFilters(products, FilterState{ComponentTypes: []string{"Колеса"}})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestApplyFiltersDimensionsCombineWithAnd(t *testing.T) {
	products := sampleProducts()

	// Brand matches but stock does not.
	got := ApplyFilters(products, FilterState{
		Brands:      []string{"Knott"},
		InStockOnly: true,
	})
	assert.Empty(t, got)
}

func TestFilterStateReset(t *testing.T) {
	f := FilterState{
		SearchQuery: "кремень",
		MinPrice:    "1000",
		MaxPrice:    "50000",
		Brands:      []string{"Кремень"},
		InStockOnly: true,
	}
	f.Reset()
	assert.Equal(t, NewFilterState(), f)
}

func TestByCategory(t *testing.T) {
	trailers := ByCategory(sampleProducts(), models.CategoryTrailers)
	assert.Len(t, trailers, 3)
	for _, p := range trailers {
		assert.Equal(t, models.CategoryTrailers, p.Category)
	}
}

func TestDistinctFacets(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []string{"Knott", "Premiorri", "Кремень", "Лев"}, DistinctBrands(products))
	assert.Equal(t, []string{"Зчіпні пристрої", "Колеса"}, DistinctSubcategories(products))

	// Empty input yields an empty slice, not nil panic material.
	assert.Empty(t, DistinctBrands(nil))
}
