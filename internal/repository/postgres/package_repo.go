package postgres

import (
	"context"
	"database/sql"
	"errors"

	"corazones/internal/domain"
)

type packageRepository struct {
	DB *sql.DB
}

// NewPackageRepository returns a domain.PackageRepository implemented with Postgres.
func NewPackageRepository(db *sql.DB) domain.PackageRepository {
	return &packageRepository{DB: db}
}

func (r *packageRepository) GetBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	query := `
		SELECT id, name, slug, description, price, is_available, created_at, updated_at
		FROM packages
		WHERE slug = $1
	`
	pkg := &domain.Package{}
	err := r.DB.QueryRowContext(ctx, query, slug).
		Scan(&pkg.ID, &pkg.Name, &pkg.Slug, &pkg.Description, &pkg.Price,
			&pkg.IsAvailable, &pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	products, err := r.listProducts(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	pkg.Products = products
	return pkg, nil
}

func (r *packageRepository) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Package, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM packages`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, slug, description, price, is_available, created_at, updated_at
		FROM packages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		pkg := &domain.Package{}
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.Slug, &pkg.Description, &pkg.Price,
			&pkg.IsAvailable, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
			return nil, 0, err
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if packages == nil {
		packages = []*domain.Package{}
	}
	return packages, total, nil
}

func (r *packageRepository) listProducts(ctx context.Context, packageID string) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN package_products pp ON pp.product_id = p.id
		WHERE pp.package_id = $1
		ORDER BY p.name
	`
	rows, err := r.DB.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}
