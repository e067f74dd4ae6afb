package domain

import (
	"context"
	"time"
)

// Capacity modes. LIMITADO events track seats; ABIERTO events never reject
// a registration on capacity grounds.
const (
	AttendanceLimited   = "LIMITADO"
	AttendanceUnlimited = "ABIERTO"
)

// Audience restriction tags.
const (
	AudienceAll      = "TODOS"
	AudienceWomen    = "MUJERES"
	AudienceMen      = "HOMBRES"
	AudienceCouples  = "PAREJAS"
	AudienceChildren = "INFANTES"
)

// Event is a scheduled activity (retreat, conference, ...) with optional
// capacity limits and registration requirements.
// swagger:model Event
type Event struct {
	ID               string     `json:"id"`
	Title            string     `json:"titulo"`
	Slug             string     `json:"slug"`
	Description      string     `json:"descripcion"`
	Date             time.Time  `json:"fecha"`
	EndTime          *time.Time `json:"hora_fin,omitempty"`
	Place            string     `json:"lugar"`
	Address          string     `json:"direccion"`
	City             string     `json:"ciudad"`
	Department       string     `json:"departamento"`
	MapCoordinates   string     `json:"coordenadas_mapa,omitempty"`
	AttendanceType   string     `json:"tipo_asistencia"`
	Seats            int        `json:"cupos"`
	Audience         string     `json:"dirigido_a"`
	RequiresOffering bool       `json:"requiere_ofrenda"`
	OfferingAmount   *int       `json:"valor_ofrenda,omitempty"`
	RequiresSignup   bool       `json:"requiere_inscripcion"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// EventWithAvailability is an event plus its computed seat availability.
// swagger:model EventWithAvailability
type EventWithAvailability struct {
	*Event
	RegisteredCount int `json:"inscritos"`
	// AvailableSeats is Seats - RegisteredCount clamped to zero. Only
	// meaningful for LIMITADO events; zero for ABIERTO.
	AvailableSeats int `json:"cupos_disponibles"`
}

// AvailableSeats returns Seats minus registered, clamped to zero. The raw
// (possibly negative) difference is kept internal: capacity may have been
// reduced below the current registration count.
func (e *Event) AvailableSeats(registered int) int {
	n := e.Seats - registered
	if n < 0 {
		return 0
	}
	return n
}

// HasCapacityFor reports whether one more registration fits. ABIERTO events
// always have capacity.
func (e *Event) HasCapacityFor(registered int) bool {
	if e.AttendanceType != AttendanceLimited {
		return true
	}
	return e.Seats-registered > 0
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// CountRegistrations returns the number of stored registrations for the event.
	CountRegistrations(ctx context.Context, eventID string) (int, error)
}

// EventService exposes the read side of the event catalog.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventBySlug(ctx context.Context, slug string) (*EventWithAvailability, error)
	ListEvents(ctx context.Context) ([]*EventWithAvailability, error)
}
