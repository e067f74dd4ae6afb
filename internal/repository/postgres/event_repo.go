package postgres

import (
	"context"
	"database/sql"
	"errors"

	"corazones/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, titulo, slug, descripcion, fecha, hora_fin, lugar, direccion,
	ciudad, departamento, coordenadas_mapa, tipo_asistencia, cupos, dirigido_a,
	requiere_ofrenda, valor_ofrenda, requiere_inscripcion, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO eventos (titulo, slug, descripcion, fecha, hora_fin, lugar, direccion,
		                     ciudad, departamento, coordenadas_mapa, tipo_asistencia, cupos,
		                     dirigido_a, requiere_ofrenda, valor_ofrenda, requiere_inscripcion,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Title, event.Slug, event.Description, event.Date, event.EndTime,
		event.Place, event.Address, event.City, event.Department, event.MapCoordinates,
		event.AttendanceType, event.Seats, event.Audience, event.RequiresOffering,
		event.OfferingAmount, event.RequiresSignup, event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM eventos WHERE slug = $1`
	event, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM eventos ORDER BY fecha`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inscripciones WHERE evento_id = $1`, eventID).
		Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	event := &domain.Event{}
	var endTime sql.NullTime
	var offering sql.NullInt64
	err := row.Scan(&event.ID, &event.Title, &event.Slug, &event.Description, &event.Date,
		&endTime, &event.Place, &event.Address, &event.City, &event.Department,
		&event.MapCoordinates, &event.AttendanceType, &event.Seats, &event.Audience,
		&event.RequiresOffering, &offering, &event.RequiresSignup,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		event.EndTime = &t
	}
	if offering.Valid {
		v := int(offering.Int64)
		event.OfferingAmount = &v
	}
	return event, nil
}
