package domain

import (
	"context"
	"time"
)

// Product categories. These are the canonical stored values; the import
// synonym table maps loose spreadsheet input onto them.
const (
	CategoryPackage      = "paquete"
	CategorySeries       = "serie"
	CategoryBook         = "libro"
	CategoryOtherProduct = "otro_producto"
)

// Fail-open import defaults. Downstream consumers depend on these: an
// unpriced product is free-by-default, an unlabeled one is available.
const (
	DefaultPrice        = 0.0
	DefaultCategory     = CategoryOtherProduct
	DefaultAvailability = true
)

// Product is a catalog item. Name is the import upsert key (exact,
// case-sensitive); Slug is independently unique.
// swagger:model Product
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	IsAvailable bool      `json:"is_available"`
	Pages       *int      `json:"pages,omitempty"`
	Measures    string    `json:"measures,omitempty"`
	Authors     string    `json:"authors,omitempty"`
	Tags        []*Tag    `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Package bundles a set of products at a combined price.
// swagger:model Package
type Package struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	IsAvailable bool       `json:"is_available"`
	Products    []*Product `json:"products,omitempty"`
	Tags        []*Tag     `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category      string
	AvailableOnly bool
}

// ProductRepository defines storage operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByName(ctx context.Context, name string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ProductFilter, page PaginationParams) ([]*Product, int, error)
	// DeleteAll removes every product. Used by the import's clean-slate mode.
	DeleteAll(ctx context.Context) error
}

// PackageRepository defines storage operations for packages.
type PackageRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Package, error)
	List(ctx context.Context, page PaginationParams) ([]*Package, int, error)
}

// CatalogService exposes the read side of the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter, page PaginationParams) ([]*Product, int, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListPackages(ctx context.Context, page PaginationParams) ([]*Package, int, error)
	GetPackageBySlug(ctx context.Context, slug string) (*Package, error)
}

// CatalogImporter ingests a spreadsheet export into the product catalog.
// It never fails past its own boundary: document-level problems come back as
// entries in the error list with zero rows processed, row-level problems
// skip only that row.
type CatalogImporter interface {
	Import(ctx context.Context, sheetURL string, deleteExisting bool) (created int, errs []string)
}
