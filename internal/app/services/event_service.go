package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/pkg/apperrors"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// EventService defines the interface for event operations
type EventService interface {
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	GetEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	SearchEvents(ctx context.Context, query string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (*models.Event, error)
	RegisterForEvent(ctx context.Context, eventID, studentID string) (*models.Registration, error)
	GetEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo        *repositories.EventRepository
	registrationRepo *repositories.RegistrationRepository
	facultyRepo      *repositories.FacultyRepository
}

// NewEventService creates a new event service instance
func NewEventService(
	eventRepo *repositories.EventRepository,
	registrationRepo *repositories.RegistrationRepository,
	facultyRepo *repositories.FacultyRepository,
) EventService {
	return &eventServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		facultyRepo:      facultyRepo,
	}
}

// validateEvent validates event data before database operations
func (s *eventServiceImpl) validateEvent(ctx context.Context, event *models.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return apperrors.NewValidationError("title cannot be empty")
	}
	if event.MaxParticipants < 0 {
		return apperrors.NewValidationError("maxParticipants cannot be negative")
	}
	if !event.Dates.EndDate.IsZero() && event.Dates.EndDate.Before(event.Dates.StartDate) {
		return apperrors.NewValidationError("end date precedes start date")
	}

	// Faculty organizers must reference an existing profile.
	if event.Organizer.Type == "faculty" && event.Organizer.OrganizerID != "" {
		if _, err := s.facultyRepo.GetByID(ctx, event.Organizer.OrganizerID); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return apperrors.NewNotFoundError("organizer not found")
			}
			return err
		}
	}

	return nil
}

// CreateEvent creates a new event open for registration
func (s *eventServiceImpl) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if err := s.validateEvent(ctx, &event); err != nil {
		return nil, err
	}

	event.ID = models.NewID(models.PrefixEvent)
	event.Status = models.EventOpen
	event.RegistrationCount = 0
	event.CreatedDate = time.Now()
	if event.Tags == nil {
		event.Tags = []string{}
	}
	if event.CreatedBy == "" {
		event.CreatedBy = event.Organizer.OrganizerID
	}

	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return nil, err
	}

	logger.Info().Str("eventId", event.ID).Str("title", event.Title).Msg("Event created")
	return &event, nil
}

// GetEventByID retrieves an event by ID
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// GetAllEvents retrieves all events
func (s *eventServiceImpl) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetEventsByOrganizer retrieves events run by an organizer
func (s *eventServiceImpl) GetEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return s.eventRepo.GetByOrganizer(ctx, organizerID)
}

// SearchEvents retrieves events matching the query
func (s *eventServiceImpl) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	return s.eventRepo.Search(ctx, query)
}

// UpdateEvent applies a partial update
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if patch.Dates != nil && patch.Dates.EndDate.Before(patch.Dates.StartDate) {
		return nil, apperrors.NewValidationError("end date precedes start date")
	}
	return s.eventRepo.Update(ctx, id, patch)
}

// DeleteEvent removes an event and returns the removed record
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id string) (*models.Event, error) {
	current, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	logger.Info().Str("eventId", id).Msg("Event deleted")
	return current, nil
}

// RegisterForEvent registers a student for an open event with free capacity
func (s *eventServiceImpl) RegisterForEvent(ctx context.Context, eventID, studentID string) (*models.Registration, error) {
	registration, err := s.registrationRepo.Register(ctx, eventID, studentID)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("eventId", eventID).Str("studentId", studentID).Msg("Student registered for event")
	return registration, nil
}

// GetEventRegistrations retrieves the registrations for an event
func (s *eventServiceImpl) GetEventRegistrations(ctx context.Context, eventID string) ([]models.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.registrationRepo.GetByEvent(ctx, eventID)
}
