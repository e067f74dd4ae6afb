package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"corazones/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

// Create inserts the registration. The unique constraint on
// (evento_id, cuori_id) is the authoritative duplicate guard: when two
// submissions race past the application-level existence check, the loser
// gets ErrAlreadyRegistered here instead of a second row.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO inscripciones (evento_id, cuori_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.PersonID, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByEventAndPerson(ctx context.Context, eventID, personID string) (*domain.Registration, error) {
	query := `
		SELECT id, evento_id, cuori_id, created_at
		FROM inscripciones
		WHERE evento_id = $1 AND cuori_id = $2
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, personID).
		Scan(&reg.ID, &reg.EventID, &reg.PersonID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}
