package domain

import (
	"context"
	"time"
)

// Registration links one Person to one Event. At most one registration may
// exist per (event, person) pair; the storage layer enforces this with a
// unique constraint, which is the authoritative guard under concurrency.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"evento_id"`
	PersonID  string    `json:"cuori_id"`
	CreatedAt time.Time `json:"fecha_inscripcion"`
}

// NewRegistration creates a Registration. ID is set by the repository on create.
func NewRegistration(eventID, personID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		PersonID:  personID,
		CreatedAt: createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration. A unique-constraint violation on
	// (event_id, cuori_id) is returned as ErrAlreadyRegistered.
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndPerson(ctx context.Context, eventID, personID string) (*Registration, error)
}

// RegistrationForm is the raw public form submission, before any
// normalization. All fields arrive as typed by the visitor.
// swagger:model RegistrationForm
type RegistrationForm struct {
	FullName       string `json:"nombre_completo"`
	Cedula         string `json:"cedula"`
	ContactNumber  string `json:"numero_contacto"`
	ContactNumber2 string `json:"numero_contacto_2"`
	Email          string `json:"email_contacto"`
	Country        string `json:"pais"`
	Department     string `json:"departamento"`
	City           string `json:"ciudad"`
	TermsAccepted  bool   `json:"terms_accepted"`
}

// Registration outcome statuses.
const (
	RegistrationCreated       = "created"
	RegistrationAlreadyExists = "already_registered"
)

// RegistrationResult is the successful outcome of a submission: either a new
// registration or an idempotent repeat (person data refreshed, no new row).
// swagger:model RegistrationResult
type RegistrationResult struct {
	Status       string        `json:"status"`
	Message      string        `json:"message"`
	Registration *Registration `json:"registration,omitempty"`
	Person       *Person       `json:"person"`
}

// PersonLookup is the read-only pre-fill answer for a cedula, optionally
// scoped to one event.
// swagger:model PersonLookup
type PersonLookup struct {
	Found        bool    `json:"found"`
	Person       *Person `json:"person,omitempty"`
	IsRegistered bool    `json:"is_inscribed"`
}

// RegistrationService orchestrates the public registration workflow.
type RegistrationService interface {
	// Submit validates and normalizes the form, upserts the person by
	// cedula, and registers them for the event identified by slug.
	// Failure modes: *ValidationError (nothing written), ErrNotFound
	// (unknown event), ErrCapacityExceeded, ErrRetryLater (storage-level
	// duplicate detected at insert time).
	Submit(ctx context.Context, eventSlug string, form RegistrationForm) (*RegistrationResult, error)
	// Lookup reports whether a person with the cedula exists and, when
	// eventSlug is non-empty, whether they are registered for that event.
	Lookup(ctx context.Context, cedula, eventSlug string) (*PersonLookup, error)
}
