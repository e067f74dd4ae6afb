package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"corazones/internal/domain"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	personRepo       domain.PersonRepository
	registrationRepo domain.RegistrationRepository
	emailService     domain.EmailService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. emailService may be nil to disable confirmation mail.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	personRepo domain.PersonRepository,
	registrationRepo domain.RegistrationRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		personRepo:       personRepo,
		registrationRepo: registrationRepo,
		emailService:     emailService,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// Submit runs the public registration workflow:
//  1. validate and normalize all fields (nothing written on failure);
//  2. upsert the person by cedula (full replace of contact data);
//  3. existing registration -> already-registered outcome;
//  4. LIMITADO event without free seats -> ErrCapacityExceeded;
//  5. insert the registration; a uniqueness violation from a concurrent
//     duplicate submission becomes ErrRetryLater.
//
// Steps 3 and 4 are advisory reads; the unique constraint behind step 5 is
// the actual correctness guard.
func (s *registrationService) Submit(ctx context.Context, eventSlug string, form domain.RegistrationForm) (*domain.RegistrationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	person, verr := ValidateRegistrationForm(form)
	if verr != nil {
		return nil, verr
	}

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	person.UpdatedAt = now
	if err := s.personRepo.Upsert(ctx, person); err != nil {
		return nil, fmt.Errorf("upsert person: %w", err)
	}

	if _, err := s.registrationRepo.GetByEventAndPerson(ctx, event.ID, person.ID); err == nil {
		// Contact data was already refreshed by the upsert above.
		return &domain.RegistrationResult{
			Status:  domain.RegistrationAlreadyExists,
			Message: fmt.Sprintf("Ya estás inscrito(a) en %s. Tus datos de contacto han sido actualizados.", event.Title),
			Person:  person,
		}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if event.AttendanceType == domain.AttendanceLimited {
		registered, err := s.eventRepo.CountRegistrations(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if !event.HasCapacityFor(registered) {
			return nil, domain.ErrCapacityExceeded
		}
	}

	reg := domain.NewRegistration(event.ID, person.ID, now)
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			// Lost the race between the existence check and the insert.
			return nil, domain.ErrRetryLater
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, event, person)

	return &domain.RegistrationResult{
		Status:       domain.RegistrationCreated,
		Message:      fmt.Sprintf("¡Te has pre-inscrito exitosamente en %s! Por favor, espera la confirmación.", event.Title),
		Registration: reg,
		Person:       person,
	}, nil
}

// sendConfirmation is best-effort: a mail failure never affects the outcome.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, person *domain.Person) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:      person.Email,
		FullName:   person.FullName,
		EventTitle: event.Title,
		EventDate:  event.Date.Format("2006-01-02 15:04"),
		EventPlace: event.Place,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.Warn("confirmation email failed",
			"event", event.Slug, "email", person.Email, "err", err)
	}
}

func (s *registrationService) Lookup(ctx context.Context, cedula, eventSlug string) (*domain.PersonLookup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	person, err := s.personRepo.GetByCedula(ctx, NormalizeCedula(cedula))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.PersonLookup{Found: false}, nil
		}
		return nil, fmt.Errorf("get person: %w", err)
	}

	lookup := &domain.PersonLookup{Found: true, Person: person}
	if eventSlug == "" {
		return lookup, nil
	}

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return lookup, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if _, err := s.registrationRepo.GetByEventAndPerson(ctx, event.ID, person.ID); err == nil {
		lookup.IsRegistered = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return lookup, nil
}
