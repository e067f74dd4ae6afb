package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"corazones/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO inscripciones \(evento_id, cuori_id, created_at\)`).
					WithArgs("ev-1", "cuori-1", now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-uuid-1"))
			},
			wantID: "reg-uuid-1",
		},
		{
			name: "unique violation becomes ErrAlreadyRegistered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO inscripciones`).
					WithArgs("ev-1", "cuori-1", now).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_inscripciones_evento_cuori"})
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name: "other db error passes through",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO inscripciones`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			reg := domain.NewRegistration("ev-1", "cuori-1", now)
			err = repo.Create(ctx, reg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, reg.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByEventAndPerson(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, evento_id, cuori_id, created_at FROM inscripciones`).
			WithArgs("ev-1", "cuori-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "evento_id", "cuori_id", "created_at"}).
				AddRow("reg-1", "ev-1", "cuori-1", now))

		repo := NewRegistrationRepository(db)
		reg, err := repo.GetByEventAndPerson(ctx, "ev-1", "cuori-1")
		require.NoError(t, err)
		require.Equal(t, "reg-1", reg.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, evento_id, cuori_id, created_at FROM inscripciones`).
			WithArgs("ev-1", "cuori-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewRegistrationRepository(db)
		_, err = repo.GetByEventAndPerson(ctx, "ev-1", "cuori-2")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
