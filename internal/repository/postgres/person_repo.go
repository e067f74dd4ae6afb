package postgres

import (
	"context"
	"database/sql"
	"errors"

	"corazones/internal/domain"
)

type personRepository struct {
	DB *sql.DB
}

// NewPersonRepository returns a domain.PersonRepository implemented with Postgres.
func NewPersonRepository(db *sql.DB) domain.PersonRepository {
	return &personRepository{DB: db}
}

// Upsert inserts the person or, when a row with the same cedula exists,
// overwrites every mutable attribute. A single statement keeps the
// last-write-wins semantics race-free under concurrent submissions.
func (r *personRepository) Upsert(ctx context.Context, p *domain.Person) error {
	query := `
		INSERT INTO cuoris (cedula, nombre_completo, numero_contacto, numero_contacto_2,
		                    email_contacto, pais, departamento, ciudad, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (cedula) DO UPDATE SET
			nombre_completo = EXCLUDED.nombre_completo,
			numero_contacto = EXCLUDED.numero_contacto,
			numero_contacto_2 = EXCLUDED.numero_contacto_2,
			email_contacto = EXCLUDED.email_contacto,
			pais = EXCLUDED.pais,
			departamento = EXCLUDED.departamento,
			ciudad = EXCLUDED.ciudad,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Cedula, p.FullName, p.ContactNumber, nullString(p.ContactNumber2),
		p.Email, p.Country, p.Department, p.City, p.UpdatedAt).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *personRepository) GetByCedula(ctx context.Context, cedula string) (*domain.Person, error) {
	query := `
		SELECT id, cedula, nombre_completo, numero_contacto, numero_contacto_2,
		       email_contacto, pais, departamento, ciudad, created_at, updated_at
		FROM cuoris
		WHERE cedula = $1
	`
	p := &domain.Person{}
	var contact2 sql.NullString
	err := r.DB.QueryRowContext(ctx, query, cedula).
		Scan(&p.ID, &p.Cedula, &p.FullName, &p.ContactNumber, &contact2,
			&p.Email, &p.Country, &p.Department, &p.City, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.ContactNumber2 = contact2.String
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
