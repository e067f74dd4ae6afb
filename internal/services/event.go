package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corazones/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	verr := domain.NewValidationError()
	if event.Title == "" {
		verr.Add("titulo", "El título es obligatorio.")
	}
	if event.AttendanceType == "" {
		event.AttendanceType = domain.AttendanceLimited
	}
	if event.AttendanceType != domain.AttendanceLimited && event.AttendanceType != domain.AttendanceUnlimited {
		verr.Add("tipo_asistencia", fmt.Sprintf("Tipo de asistencia inválido: %q.", event.AttendanceType))
	}
	if event.AttendanceType == domain.AttendanceLimited && event.Seats < 0 {
		verr.Add("cupos", "Los cupos no pueden ser negativos.")
	}
	if verr.HasErrors() {
		return verr
	}

	if event.Slug == "" {
		event.Slug = domain.Slugify(event.Title)
	}
	if event.Audience == "" {
		event.Audience = domain.AudienceAll
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.EventWithAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.withAvailability(ctx, event)
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.EventWithAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	// One count query per event. Listings are small; we can aggregate later if needed.
	result := make([]*domain.EventWithAvailability, 0, len(events))
	for _, event := range events {
		ev, err := s.withAvailability(ctx, event)
		if err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, nil
}

func (s *eventService) withAvailability(ctx context.Context, event *domain.Event) (*domain.EventWithAvailability, error) {
	registered, err := s.eventRepo.CountRegistrations(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	available := 0
	if event.AttendanceType == domain.AttendanceLimited {
		available = event.AvailableSeats(registered)
	}
	return &domain.EventWithAvailability{
		Event:           event,
		RegisteredCount: registered,
		AvailableSeats:  available,
	}, nil
}
