package service

import (
	"context"

	"github.com/vrudenko/calendar-keeper/models"
)

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// EventService implements the calendar business rules on top of the event
// repository: input validation, ownership-scoped CRUD, countdown upkeep, and
// summary upserts.
type EventService interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error)
	GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error)
	UpdateEvent(ctx context.Context, eventID int64, userID int64, update models.EventUpdate) error
	DeleteEvent(ctx context.Context, eventID int64, userID int64) error
	CreateEventSummary(ctx context.Context, eventID int64, userID int64, summaryText string) error
}
