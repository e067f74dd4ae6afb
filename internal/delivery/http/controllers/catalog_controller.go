package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"corazones/internal/delivery/http/helpers"
	"corazones/internal/domain"
)

type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{
		Logger:  logger,
		Service: svc,
	}
}

type paginatedResponse struct {
	Items      any                    `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListProducts godoc
// @Summary List catalog products
// @Tags catalog
// @Produce json
// @Param category query string false "Filter by category (paquete, serie, libro, otro_producto)"
// @Param available query bool false "Only available products"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /products [get]
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePagination(r)
	filter := domain.ProductFilter{
		Category:      r.URL.Query().Get("category"),
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}

	products, total, err := c.Service.ListProducts(r.Context(), filter, page)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list products")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, paginatedResponse{
		Items:      products,
		Pagination: helpers.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// GetProduct godoc
// @Summary Get one product by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /products/{slug} [get]
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	product, err := c.Service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "product not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to get product")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, product)
}

// ListPackages godoc
// @Summary List catalog packages
// @Tags catalog
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /packages [get]
func (c *CatalogController) ListPackages(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePagination(r)
	packages, total, err := c.Service.ListPackages(r.Context(), page)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list packages")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, paginatedResponse{
		Items:      packages,
		Pagination: helpers.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// GetPackage godoc
// @Summary Get one package by slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Package slug"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /packages/{slug} [get]
func (c *CatalogController) GetPackage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	pkg, err := c.Service.GetPackageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "package not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to get package")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pkg)
}
