package models

// Specification is one name/value characteristic of a product
// ("Вантажопідйомність: 750 кг").
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Top-level catalog categories as the store API spells them.
const (
	CategoryTrailers   = "Причепи"
	CategoryComponents = "Комплектуючі"
)

// Product is the storefront's view of a trailer or component resource owned
// by the external store API. IDs, slugs and timestamps are opaque strings.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	SKU              string          `json:"sku,omitempty"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model,omitempty"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"subCategory,omitempty"`
	Type             string          `json:"type"`
	Price            float64         `json:"price"`
	Currency         string          `json:"currency"`
	InStock          bool            `json:"inStock"`
	Quantity         int             `json:"quantity"`
	Images           []string        `json:"images"`
	Specifications   []Specification `json:"specifications"`
	Compatibility    []string        `json:"compatibility,omitempty"`
	MetaTitle        string          `json:"metaTitle,omitempty"`
	MetaDescription  string          `json:"metaDescription,omitempty"`
	Keywords         []string        `json:"keywords,omitempty"`
	IsFeatured       bool            `json:"isFeatured"`
	CreatedAt        string          `json:"createdAt,omitempty"`
	UpdatedAt        string          `json:"updatedAt,omitempty"`
}

// ProductRequest is the payload the admin forms submit when creating or
// updating a trailer or component through the store API.
type ProductRequest struct {
	Name             string          `json:"name" binding:"required"`
	Slug             string          `json:"slug,omitempty"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	SKU              string          `json:"sku,omitempty"`
	Brand            string          `json:"brand" binding:"required"`
	Model            string          `json:"model,omitempty"`
	Category         string          `json:"category" binding:"required"`
	SubCategory      string          `json:"subCategory,omitempty"`
	Type             string          `json:"type,omitempty"`
	Price            float64         `json:"price" binding:"min=0"`
	Currency         string          `json:"currency,omitempty"`
	InStock          bool            `json:"inStock"`
	Quantity         int             `json:"quantity" binding:"min=0"`
	Images           []string        `json:"images"`
	Specifications   []Specification `json:"specifications"`
	Compatibility    []string        `json:"compatibility,omitempty"`
	MetaTitle        string          `json:"metaTitle,omitempty"`
	MetaDescription  string          `json:"metaDescription,omitempty"`
	Keywords         []string        `json:"keywords,omitempty"`
	IsFeatured       bool            `json:"isFeatured"`
}
