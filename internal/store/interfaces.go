package store

import (
	"context"

	"github.com/vrudenko/calendar-keeper/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with server-assigned
	// fields populated. Returns [ErrUsernameOrEmailTaken] when the username
	// or email is already registered.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves the account whose username or email equals
	// login. Returns [ErrUserNotFound] when no such account exists.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// EventRepository persists calendar events and their companion rows
// (countdowns, summaries, audit records).
type EventRepository interface {
	// CreateEvent inserts the event together with its countdown row in a
	// single transaction and returns the event with server-assigned fields.
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)

	// GetUserEvents returns every event owned by userID, ordered by start time.
	// each carrying its countdown value when one exists.
	GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error)

	// GetUserEventsByDateRange returns the events owned by userID whose
	// [StartTime, EndTime] interval overlaps dateRange.
	GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error)

	// UpdateEvent applies a partial update to the event owned by userID,
	// records an audit row, and re-syncs the countdown when the start time
	// changed. Returns [ErrEventNotFound] when the event does not exist or
	// belongs to another user, and [ErrNoFieldsToUpdate] when update is empty.
	UpdateEvent(ctx context.Context, eventID int64, userID int64, update models.EventUpdate) error

	// DeleteEvent removes the event owned by userID together with all of its
	// companion rows in a single transaction. Returns [ErrEventNotFound] when
	// the event does not exist or belongs to another user.
	DeleteEvent(ctx context.Context, eventID int64, userID int64) error

	// UpsertEventSummary creates or replaces the summary text of the event
	// owned by userID. Returns [ErrEventNotFound] when the event does not
	// exist or belongs to another user.
	UpsertEventSummary(ctx context.Context, eventID int64, userID int64, summaryText string) error
}
