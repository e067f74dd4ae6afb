package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corazones/internal/domain"
)

type catalogService struct {
	productRepo    domain.ProductRepository
	packageRepo    domain.PackageRepository
	tagRepo        domain.TagRepository
	contextTimeout time.Duration
}

// NewCatalogService creates a CatalogService over the product, package, and
// tag repositories.
func NewCatalogService(
	productRepo domain.ProductRepository,
	packageRepo domain.PackageRepository,
	tagRepo domain.TagRepository,
	timeout time.Duration,
) domain.CatalogService {
	return &catalogService{
		productRepo:    productRepo,
		packageRepo:    packageRepo,
		tagRepo:        tagRepo,
		contextTimeout: timeout,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter, page domain.PaginationParams) ([]*domain.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	products, total, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	tagsByProduct, err := s.tagRepo.ListTagsForProducts(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("list product tags: %w", err)
	}
	for _, p := range products {
		p.Tags = tagsByProduct[p.ID]
	}
	return products, total, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	tags, err := s.tagRepo.ListTagsByProductID(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list product tags: %w", err)
	}
	product.Tags = tags
	return product, nil
}

func (s *catalogService) ListPackages(ctx context.Context, page domain.PaginationParams) ([]*domain.Package, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	packages, total, err := s.packageRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list packages: %w", err)
	}
	return packages, total, nil
}

func (s *catalogService) GetPackageBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pkg, err := s.packageRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return pkg, nil
}
