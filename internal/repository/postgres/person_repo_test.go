package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"corazones/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestPersonRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		person  *domain.Person
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "insert new person",
			person: &domain.Person{
				Cedula:        "1098765432",
				FullName:      "MARÍA GÓMEZ",
				ContactNumber: "3105551234",
				Email:         "maria@example.com",
				Country:       "COLOMBIA",
				Department:    "SANTANDER",
				City:          "BUCARAMANGA",
				UpdatedAt:     now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO cuoris .+ ON CONFLICT \(cedula\) DO UPDATE`).
					WithArgs("1098765432", "MARÍA GÓMEZ", "3105551234", sql.NullString{},
						"maria@example.com", "COLOMBIA", "SANTANDER", "BUCARAMANGA", now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow("cuori-uuid-1", now))
			},
			wantID: "cuori-uuid-1",
		},
		{
			name: "conflict preserves original created_at",
			person: &domain.Person{
				Cedula:         "1098765432",
				FullName:       "MARÍA GÓMEZ",
				ContactNumber:  "3009998877",
				ContactNumber2: "3115559988",
				Email:          "maria@example.com",
				Country:        "COLOMBIA",
				Department:     "SANTANDER",
				City:           "BUCARAMANGA",
				UpdatedAt:      now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO cuoris .+ ON CONFLICT \(cedula\) DO UPDATE`).
					WithArgs("1098765432", "MARÍA GÓMEZ", "3009998877",
						sql.NullString{String: "3115559988", Valid: true},
						"maria@example.com", "COLOMBIA", "SANTANDER", "BUCARAMANGA", now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow("cuori-uuid-1", createdAt))
			},
			wantID: "cuori-uuid-1",
		},
		{
			name:   "db error",
			person: &domain.Person{Cedula: "1", UpdatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO cuoris`).
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
			repo := NewPersonRepository(db)
			err = repo.Upsert(ctx, tt.person)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.person.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_GetByCedula(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "cedula", "nombre_completo", "numero_contacto", "numero_contacto_2",
		"email_contacto", "pais", "departamento", "ciudad", "created_at", "updated_at",
	}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM cuoris WHERE cedula = \$1`).
			WithArgs("1098765432").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("cuori-1", "1098765432", "MARÍA GÓMEZ", "3105551234", nil,
					"maria@example.com", "COLOMBIA", "SANTANDER", "BUCARAMANGA", now, now))

		repo := NewPersonRepository(db)
		p, err := repo.GetByCedula(ctx, "1098765432")
		require.NoError(t, err)
		require.Equal(t, "cuori-1", p.ID)
		require.Equal(t, "MARÍA GÓMEZ", p.FullName)
		require.Equal(t, "", p.ContactNumber2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM cuoris WHERE cedula = \$1`).
			WithArgs("999").
			WillReturnError(sql.ErrNoRows)

		repo := NewPersonRepository(db)
		_, err = repo.GetByCedula(ctx, "999")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
