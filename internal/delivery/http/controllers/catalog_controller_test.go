package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"corazones/internal/delivery/http/helpers"
	"corazones/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogService implements domain.CatalogService for handler tests.
type fakeCatalogService struct {
	products   []*domain.Product
	total      int
	lastFilter domain.ProductFilter
	lastPage   domain.PaginationParams
	packages   []*domain.Package
}

func (f *fakeCatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter, page domain.PaginationParams) ([]*domain.Product, int, error) {
	f.lastFilter = filter
	f.lastPage = page
	return f.products, f.total, nil
}

func (f *fakeCatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalogService) ListPackages(ctx context.Context, page domain.PaginationParams) ([]*domain.Package, int, error) {
	return f.packages, len(f.packages), nil
}

func (f *fakeCatalogService) GetPackageBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	for _, p := range f.packages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestCatalogController_ListProducts(t *testing.T) {
	svc := &fakeCatalogService{
		products: []*domain.Product{{ID: "prod-1", Name: "Libro A", Slug: "libro-a"}},
		total:    41,
	}
	c := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/products?category=libro&available=true&page=2&page_size=10", nil)
	rec := httptest.NewRecorder()
	c.ListProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ProductFilter{Category: "libro", AvailableOnly: true}, svc.lastFilter)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, svc.lastPage)

	var resp struct {
		Data struct {
			Items      []*domain.Product      `json:"items"`
			Pagination helpers.PaginationMeta `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, 41, resp.Data.Pagination.Total)
	assert.Equal(t, 5, resp.Data.Pagination.TotalPages)
}

func TestCatalogController_GetProduct(t *testing.T) {
	svc := &fakeCatalogService{
		products: []*domain.Product{{ID: "prod-1", Name: "Libro A", Slug: "libro-a"}},
	}
	c := NewCatalogController(testLogger, svc)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/libro-a", nil)
		req.SetPathValue("slug", "libro-a")
		rec := httptest.NewRecorder()
		c.GetProduct(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
		req.SetPathValue("slug", "ghost")
		rec := httptest.NewRecorder()
		c.GetProduct(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCatalogController_Packages(t *testing.T) {
	svc := &fakeCatalogService{
		packages: []*domain.Package{{ID: "pkg-1", Name: "Paquete Matrimonio", Slug: "paquete-matrimonio"}},
	}
	c := NewCatalogController(testLogger, svc)

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c.ListPackages(rec, httptest.NewRequest(http.MethodGet, "/packages", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get by slug", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/packages/paquete-matrimonio", nil)
		req.SetPathValue("slug", "paquete-matrimonio")
		rec := httptest.NewRecorder()
		c.GetPackage(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing package", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/packages/ghost", nil)
		req.SetPathValue("slug", "ghost")
		rec := httptest.NewRecorder()
		c.GetPackage(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
