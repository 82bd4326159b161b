// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Rudenko

// Package adapter provides the client SDK for the calendar-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples calling code
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/vrudenko/calendar-keeper/models"
)

// ServerAdapter defines transport-agnostic communication with the
// calendar-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. Login calls it automatically.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account. Returns an error carrying the server's
	// message if the request fails or validation is rejected.
	Register(ctx context.Context, request models.RegisterRequest) error

	// Login authenticates with the server. On success it stores the bearer
	// token from the Authorization response header via SetToken and returns
	// the public user profile.
	Login(ctx context.Context, credentials models.Credentials) (models.UserProfile, error)

	// CreateEvent creates an event and returns its server-assigned id.
	CreateEvent(ctx context.Context, event models.Event) (int64, error)

	// GetUserEvents lists every event of the user, ordered by start time,
	// annotated with its countdown value.
	GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error)

	// GetUserEventsByDateRange lists the user's events whose interval
	// overlaps dateRange.
	GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error)

	// UpdateEvent applies a partial update to an event owned by the
	// authenticated user. Returns [ErrNotFound] (wrapped) when the event does
	// not exist or belongs to someone else.
	UpdateEvent(ctx context.Context, eventID int64, update models.EventUpdate) error

	// DeleteEvent removes an event owned by the authenticated user together
	// with its companion rows.
	DeleteEvent(ctx context.Context, eventID int64) error

	// CreateEventSummary attaches or replaces the free-text summary of an
	// event owned by the authenticated user.
	CreateEventSummary(ctx context.Context, eventID int64, summaryText string) error
}
