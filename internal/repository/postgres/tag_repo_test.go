package postgres

import (
	"context"
	"database/sql"
	"testing"

	"corazones/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_EnsureTagForProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "existing tag is linked",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM tags WHERE name = \$1`).
					WithArgs("devocionales").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tag-1"))
				mock.ExpectExec(`INSERT INTO product_tags .+ ON CONFLICT \(product_id, tag_id\) DO NOTHING`).
					WithArgs("prod-1", "tag-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: "tag-1",
		},
		{
			name: "missing tag is created",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM tags WHERE name = \$1`).
					WithArgs("devocionales").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`INSERT INTO tags \(name\) VALUES \(\$1\) RETURNING id`).
					WithArgs("devocionales").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tag-2"))
				mock.ExpectExec(`INSERT INTO product_tags`).
					WithArgs("prod-1", "tag-2").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: "tag-2",
		},
		{
			name: "lost creation race reads the winner",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM tags WHERE name = \$1`).
					WithArgs("devocionales").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`INSERT INTO tags \(name\) VALUES \(\$1\) RETURNING id`).
					WithArgs("devocionales").
					WillReturnError(&pq.Error{Code: "23505", Constraint: "tags_name_key"})
				mock.ExpectQuery(`SELECT id FROM tags WHERE name = \$1`).
					WithArgs("devocionales").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tag-3"))
				mock.ExpectExec(`INSERT INTO product_tags`).
					WithArgs("prod-1", "tag-3").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: "tag-3",
		},
		{
			name: "link failure surfaces",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM tags WHERE name = \$1`).
					WithArgs("devocionales").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("tag-1"))
				mock.ExpectExec(`INSERT INTO product_tags`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTagRepository(db)
			tagID, err := repo.EnsureTagForProduct(ctx, "prod-1", "devocionales")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tagID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_ListTagsByProductID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT t.id, t.name FROM tags t\s+JOIN product_tags pt`).
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("tag-1", "devocionales").
			AddRow("tag-2", "matrimonio"))

	repo := NewTagRepository(db)
	tags, err := repo.ListTagsByProductID(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "devocionales", tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ListTagsForProducts(t *testing.T) {
	t.Run("empty input skips the query", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewTagRepository(db)
		result, err := repo.ListTagsForProducts(context.Background(), nil)
		require.NoError(t, err)
		require.Empty(t, result)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tags grouped by product", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT pt.product_id, t.id, t.name FROM tags t`).
			WithArgs(pq.Array([]string{"prod-1", "prod-2"})).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "id", "name"}).
				AddRow("prod-1", "tag-1", "devocionales").
				AddRow("prod-1", "tag-2", "matrimonio").
				AddRow("prod-2", "tag-1", "devocionales"))

		repo := NewTagRepository(db)
		result, err := repo.ListTagsForProducts(context.Background(), []string{"prod-1", "prod-2"})
		require.NoError(t, err)
		require.Len(t, result["prod-1"], 2)
		require.Len(t, result["prod-2"], 1)
		require.Equal(t, "devocionales", result["prod-2"][0].Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_RemoveProductTag(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM product_tags WHERE product_id = \$1 AND tag_id = \$2`).
			WithArgs("prod-1", "tag-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewTagRepository(db)
		require.NoError(t, repo.RemoveProductTag(context.Background(), "prod-1", "tag-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing link", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM product_tags`).
			WithArgs("prod-1", "tag-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewTagRepository(db)
		err = repo.RemoveProductTag(context.Background(), "prod-1", "tag-9")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
