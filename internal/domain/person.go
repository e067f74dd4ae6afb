package domain

import (
	"context"
	"time"
)

// Person is an individual contact record ("Cuori"), keyed by national ID
// (cédula) and shared across every event the person registers for.
// swagger:model Person
type Person struct {
	ID             string    `json:"id"`
	Cedula         string    `json:"cedula"`
	FullName       string    `json:"nombre_completo"`
	ContactNumber  string    `json:"numero_contacto"`
	ContactNumber2 string    `json:"numero_contacto_2,omitempty"`
	Email          string    `json:"email_contacto"`
	Country        string    `json:"pais"`
	Department     string    `json:"departamento"`
	City           string    `json:"ciudad"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PersonRepository defines storage operations for persons.
type PersonRepository interface {
	// Upsert creates the person if no row with the same cedula exists,
	// otherwise overwrites every mutable attribute with the given values
	// (last-write-wins, no history). The stored ID is set on the argument.
	Upsert(ctx context.Context, p *Person) error
	GetByCedula(ctx context.Context, cedula string) (*Person, error)
}
