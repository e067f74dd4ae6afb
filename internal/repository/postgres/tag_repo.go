package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"corazones/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) EnsureTagForProduct(ctx context.Context, productID, tagName string) (string, error) {
	var tagID string
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, tagName).Scan(&tagID)
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}
	if err == sql.ErrNoRows {
		if err := r.DB.QueryRowContext(ctx, `INSERT INTO tags (name) VALUES ($1) RETURNING id`, tagName).Scan(&tagID); err != nil {
			var perr *pq.Error
			if errors.As(err, &perr) && perr.Code == "23505" {
				// Lost a race with a concurrent insert; read the winner.
				if err := r.DB.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, tagName).Scan(&tagID); err != nil {
					return "", err
				}
			} else {
				return "", fmt.Errorf("create tag %q: %w", tagName, err)
			}
		}
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO product_tags (product_id, tag_id) VALUES ($1, $2) ON CONFLICT (product_id, tag_id) DO NOTHING`,
		productID, tagID)
	if err != nil {
		return "", err
	}
	return tagID, nil
}

func (r *tagRepository) ListTagsByProductID(ctx context.Context, productID string) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t
		 JOIN product_tags pt ON pt.tag_id = t.id
		 WHERE pt.product_id = $1
		 ORDER BY t.name`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListTagsForProducts loads tags for many products in one query, keyed by
// product ID. Used by catalog listings to avoid per-row tag queries.
func (r *tagRepository) ListTagsForProducts(ctx context.Context, productIDs []string) (map[string][]*domain.Tag, error) {
	result := make(map[string][]*domain.Tag)
	if len(productIDs) == 0 {
		return result, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT pt.product_id, t.id, t.name FROM tags t
		 JOIN product_tags pt ON pt.tag_id = t.id
		 WHERE pt.product_id = ANY($1)
		 ORDER BY t.name`, pq.Array(productIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var tag domain.Tag
		if err := rows.Scan(&productID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		result[productID] = append(result[productID], &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *tagRepository) RemoveProductTag(ctx context.Context, productID, tagID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM product_tags WHERE product_id = $1 AND tag_id = $2`, productID, tagID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
