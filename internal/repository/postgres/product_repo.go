package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"corazones/internal/domain"
)

type productRepository struct {
	DB *sql.DB
}

// NewProductRepository returns a domain.ProductRepository implemented with Postgres.
func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, slug, description, price, category, is_available,
	pages, measures, authors, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (name, slug, description, price, category, is_available,
		                      pages, measures, authors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Name, p.Slug, p.Description, p.Price, p.Category, p.IsAvailable,
		nullInt(p.Pages), p.Measures, p.Authors, p.CreatedAt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return fmt.Errorf("product name or slug already exists: %s: %w", p.Name, err)
		}
		return err
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET description = $2, price = $3, category = $4, is_available = $5,
		    pages = $6, measures = $7, authors = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Description, p.Price, p.Category, p.IsAvailable,
		nullInt(p.Pages), p.Measures, p.Authors, p.UpdatedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	return r.getOne(ctx, query, name)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *productRepository) getOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter, page domain.PaginationParams) ([]*domain.Product, int, error) {
	where := `WHERE ($1 = '' OR category = $1) AND (NOT $2 OR is_available)`

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products `+where,
		filter.Category, filter.AvailableOnly).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.DB.QueryContext(ctx, query,
		filter.Category, filter.AvailableOnly, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, total, nil
}

func (r *productRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products`)
	return err
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var pages sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Category,
		&p.IsAvailable, &pages, &p.Measures, &p.Authors, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if pages.Valid {
		v := int(pages.Int64)
		p.Pages = &v
	}
	return p, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
