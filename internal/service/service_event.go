package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/store"
	"github.com/vrudenko/calendar-keeper/internal/validators"
	"github.com/vrudenko/calendar-keeper/models"
)

// eventService is the concrete implementation of EventService. All ownership
// enforcement happens below it in the repository; this layer owns input
// validation and defaulting.
type eventService struct {
	eventRepository store.EventRepository
	validator       validators.Validator
	logger          *logger.Logger
}

// NewEventService constructs an EventService backed by the given repository.
func NewEventService(eventRepository store.EventRepository, logger *logger.Logger) EventService {
	return &eventService{
		eventRepository: eventRepository,
		validator:       validators.NewCalendarValidator(),
		logger:          logger,
	}
}

// CreateEvent validates the event, defaults its status to "active", and
// persists it together with its countdown row.
func (e *eventService) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	if err := e.validator.Validate(ctx, event); err != nil {
		log.Warn().Err(err).Int64("user_id", event.UserID).Msg("event validation failed")
		return models.Event{}, err
	}

	if event.EventStatus == "" {
		event.EventStatus = models.EventStatusActive
	}

	createdEvent, err := e.eventRepository.CreateEvent(ctx, event)
	if err != nil {
		log.Err(err).Int64("user_id", event.UserID).Msg("event creation ended with error")
		return models.Event{}, fmt.Errorf("event creation ended with error: %w", err)
	}

	return createdEvent, nil
}

// GetUserEvents returns every event of the user with countdown annotations.
func (e *eventService) GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}

	events, err := e.eventRepository.GetUserEvents(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("event listing ended with error")
		return nil, fmt.Errorf("event listing ended with error: %w", err)
	}

	return events, nil
}

// GetUserEventsByDateRange returns the user's events overlapping dateRange.
func (e *eventService) GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, ErrInvalidDataProvided
	}
	if dateRange.Start.IsZero() || dateRange.End.IsZero() {
		return nil, ErrInvalidDataProvided
	}
	if dateRange.End.Before(dateRange.Start) {
		return nil, ErrInvalidDateRange
	}

	events, err := e.eventRepository.GetUserEventsByDateRange(ctx, userID, dateRange)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("event range listing ended with error")
		return nil, fmt.Errorf("event range listing ended with error: %w", err)
	}

	return events, nil
}

// UpdateEvent applies a validated partial update to the user's event.
// Repository-level sentinels (not found, no fields) pass through untouched so
// the handler can map them.
func (e *eventService) UpdateEvent(ctx context.Context, eventID int64, userID int64, update models.EventUpdate) error {
	log := logger.FromContext(ctx)

	if eventID <= 0 || userID <= 0 {
		return ErrInvalidDataProvided
	}

	if err := e.validator.Validate(ctx, update); err != nil {
		log.Warn().Err(err).Int64("event_id", eventID).Msg("event update validation failed")
		return err
	}

	err := e.eventRepository.UpdateEvent(ctx, eventID, userID, update)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) || errors.Is(err, store.ErrNoFieldsToUpdate) {
			return err
		}

		log.Err(err).Int64("event_id", eventID).Msg("event update ended with error")
		return fmt.Errorf("event update ended with error: %w", err)
	}

	return nil
}

// DeleteEvent removes the user's event and every companion row.
func (e *eventService) DeleteEvent(ctx context.Context, eventID int64, userID int64) error {
	log := logger.FromContext(ctx)

	if eventID <= 0 || userID <= 0 {
		return ErrInvalidDataProvided
	}

	err := e.eventRepository.DeleteEvent(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			return err
		}

		log.Err(err).Int64("event_id", eventID).Msg("event deletion ended with error")
		return fmt.Errorf("event deletion ended with error: %w", err)
	}

	return nil
}

// CreateEventSummary validates and upserts the free-text summary of the
// user's event.
func (e *eventService) CreateEventSummary(ctx context.Context, eventID int64, userID int64, summaryText string) error {
	log := logger.FromContext(ctx)

	if eventID <= 0 {
		return ErrInvalidDataProvided
	}

	request := models.SummaryRequest{UserID: userID, SummaryText: summaryText}
	if err := e.validator.Validate(ctx, request); err != nil {
		log.Warn().Err(err).Int64("event_id", eventID).Msg("summary validation failed")
		return err
	}

	err := e.eventRepository.UpsertEventSummary(ctx, eventID, userID, summaryText)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			return err
		}

		log.Err(err).Int64("event_id", eventID).Msg("summary upsert ended with error")
		return fmt.Errorf("summary upsert ended with error: %w", err)
	}

	return nil
}
