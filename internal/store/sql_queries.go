package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/vrudenko/calendar-keeper/models"
)

// userColumns is the canonical column order of the "users" table. Every user
// SELECT and RETURNING clause uses this order, so scans stay aligned with it.
var userColumns = []string{
	"user_id",
	"first_name",
	"last_name",
	"middle_initial",
	"username",
	"user_email",
	"phone_number",
	"password_hash",
	"created_at",
}

// eventColumns is the canonical column order of event list queries: all
// "events" columns followed by the left-joined countdown value.
var eventColumns = []string{
	"e.event_id",
	"e.user_id",
	"e.event_type",
	"e.title",
	"e.description",
	"e.start_time",
	"e.end_time",
	"e.location",
	"e.category",
	"e.priority",
	"e.color_code",
	"e.tags",
	"e.event_status",
	"e.created_at",
	"c.time_remaining",
}

// buildInsertUserQuery produces the INSERT for a new account. Server-assigned
// columns come back via RETURNING.
func (db *DB) buildInsertUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert("users").
		Columns("first_name", "last_name", "middle_initial", "username", "user_email", "phone_number", "password_hash").
		Values(user.FirstName, user.LastName, user.MiddleInitial, user.Username, user.Email, user.PhoneNumber, user.PasswordHash).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

// buildFindUserByLoginQuery matches an account by username or email with a
// single parameter, the way the login form submits it.
func (db *DB) buildFindUserByLoginQuery(login string) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From("users").
		Where(sq.Or{
			sq.Eq{"username": login},
			sq.Eq{"user_email": login},
		}).
		ToSql()
}

// buildInsertEventQuery produces the INSERT for a new event. EventStatus is
// stored as given; callers default it to "active" beforehand.
func (db *DB) buildInsertEventQuery(event models.Event) (string, []any, error) {
	return db.builder.
		Insert("events").
		Columns("user_id", "event_type", "title", "description", "start_time", "end_time",
			"location", "category", "priority", "color_code", "tags", "event_status").
		Values(event.UserID, event.EventType, event.Title, event.Description, event.StartTime, event.EndTime,
			event.Location, event.Category, event.Priority, event.ColorCode, event.Tags, event.EventStatus).
		Suffix("RETURNING event_id, created_at").
		ToSql()
}

// buildSelectUserEventsQuery lists every event of a user together with its
// countdown value, most recent start first.
func (db *DB) buildSelectUserEventsQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select(eventColumns...).
		From("events e").
		LeftJoin("countdowns c ON c.event_id = e.event_id").
		Where(sq.Eq{"e.user_id": userID}).
		OrderBy("e.start_time ASC").
		ToSql()
}

// buildSelectEventsByRangeQuery lists a user's events overlapping the given
// interval. An event matches when its start falls inside the interval, its
// end falls inside the interval, or it spans the interval entirely.
func (db *DB) buildSelectEventsByRangeQuery(userID int64, dateRange models.DateRange) (string, []any, error) {
	return db.builder.
		Select(eventColumns...).
		From("events e").
		LeftJoin("countdowns c ON c.event_id = e.event_id").
		Where(sq.Eq{"e.user_id": userID}).
		Where(sq.Or{
			sq.Expr("e.start_time BETWEEN ? AND ?", dateRange.Start, dateRange.End),
			sq.Expr("e.end_time BETWEEN ? AND ?", dateRange.Start, dateRange.End),
			sq.And{
				sq.LtOrEq{"e.start_time": dateRange.Start},
				sq.GtOrEq{"e.end_time": dateRange.End},
			},
		}).
		OrderBy("e.start_time ASC").
		ToSql()
}

// buildUpdateEventQuery produces a dynamic UPDATE carrying only the fields
// present in update. Identity columns are never part of the SET list; the
// WHERE clause pins both the event and its owner.
//
// Returns [ErrNoFieldsToUpdate] when update carries nothing to apply.
func (db *DB) buildUpdateEventQuery(eventID int64, userID int64, update models.EventUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrNoFieldsToUpdate
	}

	query := db.builder.Update("events")

	if update.EventType != nil {
		query = query.Set("event_type", *update.EventType)
	}
	if update.Title != nil {
		query = query.Set("title", *update.Title)
	}
	if update.Description != nil {
		query = query.Set("description", *update.Description)
	}
	if update.StartTime != nil {
		query = query.Set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		query = query.Set("end_time", *update.EndTime)
	}
	if update.Location != nil {
		query = query.Set("location", *update.Location)
	}
	if update.Category != nil {
		query = query.Set("category", *update.Category)
	}
	if update.Priority != nil {
		query = query.Set("priority", *update.Priority)
	}
	if update.ColorCode != nil {
		query = query.Set("color_code", *update.ColorCode)
	}
	if update.Tags != nil {
		query = query.Set("tags", *update.Tags)
	}
	if update.EventStatus != nil {
		query = query.Set("event_status", *update.EventStatus)
	}

	sqlQuery, args, err := query.
		Where(sq.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sqlQuery, args, nil
}

// buildInsertCountdownQuery pairs a new event with its countdown row.
func (db *DB) buildInsertCountdownQuery(eventID int64, countdown models.Countdown) (string, []any, error) {
	return db.builder.
		Insert("countdowns").
		Columns("event_id", "time_remaining").
		Values(eventID, countdown.TimeRemaining).
		ToSql()
}

// buildUpdateCountdownQuery re-syncs the countdown after a start time change.
func (db *DB) buildUpdateCountdownQuery(eventID int64, countdown models.Countdown) (string, []any, error) {
	return db.builder.
		Update("countdowns").
		Set("time_remaining", countdown.TimeRemaining).
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
}

// buildInsertAuditQuery records who touched an event. The timestamp column
// defaults to the database clock.
func (db *DB) buildInsertAuditQuery(eventID int64, updatedBy int64) (string, []any, error) {
	return db.builder.
		Insert("event_updates").
		Columns("event_id", "updated_by").
		Values(eventID, updatedBy).
		ToSql()
}

// buildSelectEventOwnerQuery fetches the owning user of an event, used for
// ownership checks inside multi-statement transactions.
func (db *DB) buildSelectEventOwnerQuery(eventID int64) (string, []any, error) {
	return db.builder.
		Select("user_id").
		From("events").
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
}

// buildDeleteByEventQuery removes the rows of table belonging to an event.
// Used for the manual cascade on event deletion.
func (db *DB) buildDeleteByEventQuery(table string, eventID int64) (string, []any, error) {
	return db.builder.
		Delete(table).
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
}

// buildSelectSummaryExistsQuery checks whether a summary row already exists
// for the event.
func (db *DB) buildSelectSummaryExistsQuery(eventID int64) (string, []any, error) {
	return db.builder.
		Select("event_id").
		From("event_summaries").
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
}

// buildInsertSummaryQuery creates the first summary of an event.
func (db *DB) buildInsertSummaryQuery(summary models.EventSummary) (string, []any, error) {
	return db.builder.
		Insert("event_summaries").
		Columns("event_id", "summary_text").
		Values(summary.EventID, summary.SummaryText).
		ToSql()
}

// buildUpdateSummaryQuery replaces the existing summary of an event.
func (db *DB) buildUpdateSummaryQuery(summary models.EventSummary) (string, []any, error) {
	return db.builder.
		Update("event_summaries").
		Set("summary_text", summary.SummaryText).
		Where(sq.Eq{"event_id": summary.EventID}).
		ToSql()
}
