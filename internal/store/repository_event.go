// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Rudenko

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/models"
)

// eventRepository is the SQL-backed implementation of [EventRepository].
// It executes all calendar-event CRUD operations against the "events" table
// and its companion tables (countdowns, event_summaries, event_updates)
// using the embedded [*DB] connection.
//
// Every mutation that touches more than one table runs inside a single
// transaction, so an event can never exist without its countdown and a
// deleted event never leaves companion rows behind.
type eventRepository struct {
	*DB
	logger *logger.Logger
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateEvent inserts the event and its countdown row in one transaction and
// returns the event with server-assigned fields (EventID, CreatedAt) plus the
// countdown value mirrored from the start time.
func (r *eventRepository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	insertEvent, insertEventArgs, err := r.DB.buildInsertEventQuery(event)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Int64("user_id", event.UserID).
			Msg("failed to create query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	countdown := models.Countdown{TimeRemaining: event.StartTime}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Int64("user_id", event.UserID).
			Msg("failed to begin transaction")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = tx.QueryRowContext(ctx, insertEvent, insertEventArgs...).Scan(&event.EventID, &event.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Int64("user_id", event.UserID).
			Msg("failed to insert event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	insertCountdown, insertCountdownArgs, err := r.DB.buildInsertCountdownQuery(event.EventID, countdown)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Int64("event_id", event.EventID).
			Msg("failed to create countdown query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, insertCountdown, insertCountdownArgs...); err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Int64("event_id", event.EventID).
			Msg("failed to insert countdown")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "eventRepository.CreateEvent").
			Int64("event_id", event.EventID).
			Msg("failed to commit transaction")
		return models.Event{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	event.Countdown = &countdown.TimeRemaining

	log.Info().
		Str("func", "eventRepository.CreateEvent").
		Int64("event_id", event.EventID).
		Int64("user_id", event.UserID).
		Msg("event created")

	return event, nil
}

// GetUserEvents returns every event owned by userID, ordered by start time.
// Each event carries its countdown value when the countdown row exists.
func (r *eventRepository) GetUserEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.DB.buildSelectUserEventsQuery(userID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.GetUserEvents").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEvents(ctx, "eventRepository.GetUserEvents", userID, query, args)
}

// GetUserEventsByDateRange returns the events owned by userID overlapping
// the inclusive [dateRange.Start, dateRange.End] interval, earliest first.
func (r *eventRepository) GetUserEventsByDateRange(ctx context.Context, userID int64, dateRange models.DateRange) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.DB.buildSelectEventsByRangeQuery(userID, dateRange)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.GetUserEventsByDateRange").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEvents(ctx, "eventRepository.GetUserEventsByDateRange", userID, query, args)
}

// queryEvents executes an event list query and scans the result set.
func (r *eventRepository) queryEvents(ctx context.Context, funcName string, userID int64, query string, args []any) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("failed to execute query for getting user events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0, 50)

	for rows.Next() {
		var event models.Event
		var countdown sql.NullTime

		scanErr := rows.Scan(
			&event.EventID,
			&event.UserID,
			&event.EventType,
			&event.Title,
			&event.Description,
			&event.StartTime,
			&event.EndTime,
			&event.Location,
			&event.Category,
			&event.Priority,
			&event.ColorCode,
			&event.Tags,
			&event.EventStatus,
			&event.CreatedAt,
			&countdown,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Int64("user_id", userID).
				Msg("failed to scan event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if countdown.Valid {
			event.Countdown = &countdown.Time
		}

		events = append(events, event)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return events, nil
}

// UpdateEvent applies a partial update to the event owned by userID inside a
// single transaction. A successful update always records an audit row in
// event_updates; the paired countdown is re-synced only when the start time
// actually changed.
//
// Returns [ErrNoFieldsToUpdate] when update carries nothing to apply and
// [ErrEventNotFound] when no row matches the (eventID, userID) pair.
func (r *eventRepository) UpdateEvent(ctx context.Context, eventID int64, userID int64, update models.EventUpdate) error {
	log := logger.FromContext(ctx)

	updateEvent, updateEventArgs, err := r.DB.buildUpdateEventQuery(eventID, userID, update)
	if err != nil {
		if errors.Is(err, ErrNoFieldsToUpdate) {
			return err
		}
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to create query")
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateEvent, updateEventArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to execute update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	insertAudit, insertAuditArgs, err := r.DB.buildInsertAuditQuery(eventID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to create audit query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, insertAudit, insertAuditArgs...); err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to insert audit row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// countdown mirrors the start time, so only a start change re-syncs it
	if update.StartTime != nil {
		updateCountdown, updateCountdownArgs, buildErr := r.DB.buildUpdateCountdownQuery(eventID, models.Countdown{TimeRemaining: *update.StartTime})
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "eventRepository.UpdateEvent").
				Int64("event_id", eventID).
				Msg("failed to create countdown query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, updateCountdown, updateCountdownArgs...); err != nil {
			log.Err(err).
				Str("func", "eventRepository.UpdateEvent").
				Int64("event_id", eventID).
				Msg("failed to update countdown")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "eventRepository.UpdateEvent").
			Int64("event_id", eventID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "eventRepository.UpdateEvent").
		Int64("event_id", eventID).
		Int64("user_id", userID).
		Bool("start_time_changed", update.StartTime != nil).
		Msg("event updated")

	return nil
}

// DeleteEvent removes the event and every companion row in one transaction.
// Companion tables are cleared first so the foreign keys never block the
// final event delete.
//
// Returns [ErrEventNotFound] when the event does not exist or is owned by
// another user.
func (r *eventRepository) DeleteEvent(ctx context.Context, eventID int64, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.DeleteEvent").
			Int64("event_id", eventID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = r.checkEventOwner(ctx, tx, eventID, userID); err != nil {
		return err
	}

	for _, table := range []string{"countdowns", "event_summaries", "event_updates", "events"} {
		deleteQuery, deleteArgs, buildErr := r.DB.buildDeleteByEventQuery(table, eventID)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "eventRepository.DeleteEvent").
				Int64("event_id", eventID).
				Str("table", table).
				Msg("failed to create delete query")
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			log.Err(err).
				Str("func", "eventRepository.DeleteEvent").
				Int64("event_id", eventID).
				Str("table", table).
				Msg("failed to delete rows")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "eventRepository.DeleteEvent").
			Int64("event_id", eventID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "eventRepository.DeleteEvent").
		Int64("event_id", eventID).
		Int64("user_id", userID).
		Msg("event deleted")

	return nil
}

// UpsertEventSummary creates or replaces the summary text of an event inside
// a single transaction. The ownership check runs first so a summary can never
// be attached to another user's event.
func (r *eventRepository) UpsertEventSummary(ctx context.Context, eventID int64, userID int64, summaryText string) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = r.checkEventOwner(ctx, tx, eventID, userID); err != nil {
		return err
	}

	summary := models.EventSummary{EventID: eventID, SummaryText: summaryText}

	existsQuery, existsArgs, err := r.DB.buildSelectSummaryExistsQuery(eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var existingEventID int64
	scanErr := tx.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&existingEventID)

	var upsertQuery string
	var upsertArgs []any
	switch {
	case scanErr == nil:
		upsertQuery, upsertArgs, err = r.DB.buildUpdateSummaryQuery(summary)
	case errors.Is(scanErr, sql.ErrNoRows):
		upsertQuery, upsertArgs, err = r.DB.buildInsertSummaryQuery(summary)
	default:
		log.Err(scanErr).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to check summary existence")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to create upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		log.Err(err).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to upsert summary")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "eventRepository.UpsertEventSummary").
			Int64("event_id", eventID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// checkEventOwner verifies inside tx that the event exists and belongs to
// userID. Both "absent" and "owned by someone else" surface as
// [ErrEventNotFound].
func (r *eventRepository) checkEventOwner(ctx context.Context, tx *sql.Tx, eventID int64, userID int64) error {
	log := logger.FromContext(ctx)

	ownerQuery, ownerArgs, err := r.DB.buildSelectEventOwnerQuery(eventID)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.checkEventOwner").
			Int64("event_id", eventID).
			Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var ownerID int64
	if err = tx.QueryRowContext(ctx, ownerQuery, ownerArgs...).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}

		log.Err(err).
			Str("func", "eventRepository.checkEventOwner").
			Int64("event_id", eventID).
			Msg("failed to query event owner")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if ownerID != userID {
		log.Warn().
			Str("func", "eventRepository.checkEventOwner").
			Int64("event_id", eventID).
			Int64("user_id", userID).
			Msg("event belongs to another user")
		return ErrEventNotFound
	}

	return nil
}
