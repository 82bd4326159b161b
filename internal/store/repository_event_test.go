package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/models"
)

func newTestEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	repo := &eventRepository{
		DB:     newTestDB(db),
		logger: logger.Nop(),
	}
	return repo, mock, db
}

func testEvent() models.Event {
	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	return models.Event{
		UserID:      42,
		EventType:   models.EventTypePersonal,
		Title:       "Dentist",
		Description: "checkup",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Location:    "Main St 1",
		Category:    "health",
		Priority:    models.PriorityUrgentImportant,
		EventStatus: models.EventStatusActive,
	}
}

func eventRow(event models.Event, eventID int64, countdown any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"event_id", "user_id", "event_type", "title", "description",
		"start_time", "end_time", "location", "category", "priority",
		"color_code", "tags", "event_status", "created_at", "time_remaining",
	}).AddRow(
		eventID, event.UserID, event.EventType, event.Title, event.Description,
		event.StartTime, event.EndTime, event.Location, event.Category, event.Priority,
		event.ColorCode, event.Tags, event.EventStatus, time.Now(), countdown,
	)
}

func TestCreateEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := testEvent()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO events").
		WithArgs(event.UserID, event.EventType, event.Title, event.Description,
			event.StartTime, event.EndTime, event.Location, event.Category,
			event.Priority, event.ColorCode, event.Tags, event.EventStatus).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "created_at"}).AddRow(10, now))
	mock.ExpectExec("INSERT INTO countdowns").
		WithArgs(int64(10), event.StartTime).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateEvent(ctx, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.EventID != 10 {
		t.Errorf("expected EventID=10, got %d", created.EventID)
	}
	if created.Countdown == nil || !created.Countdown.Equal(event.StartTime) {
		t.Errorf("expected countdown mirroring start time, got %v", created.Countdown)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateEvent_CountdownInsertFails(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := testEvent()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO events").
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "created_at"}).AddRow(10, time.Now()))
	mock.ExpectExec("INSERT INTO countdowns").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateEvent(ctx, event)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetUserEvents_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := testEvent()

	rows := eventRow(event, 10, event.StartTime)

	mock.ExpectQuery("SELECT e.event_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	events, err := repo.GetUserEvents(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Countdown == nil || !events[0].Countdown.Equal(event.StartTime) {
		t.Errorf("expected countdown %v, got %v", event.StartTime, events[0].Countdown)
	}
}

func TestGetUserEvents_NilCountdown(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := testEvent()

	mock.ExpectQuery("SELECT e.event_id").
		WithArgs(int64(42)).
		WillReturnRows(eventRow(event, 11, nil))

	events, err := repo.GetUserEvents(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Countdown != nil {
		t.Errorf("expected nil countdown for missing row, got %v", events[0].Countdown)
	}
}

func TestGetUserEvents_Empty(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT e.event_id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "user_id", "event_type", "title", "description",
			"start_time", "end_time", "location", "category", "priority",
			"color_code", "tags", "event_status", "created_at", "time_remaining",
		}))

	events, err := repo.GetUserEvents(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty slice, got %d events", len(events))
	}
}

func TestGetUserEventsByDateRange_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	event := testEvent()

	dateRange := models.DateRange{
		Start: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC),
	}

	mock.ExpectQuery("SELECT e.event_id").
		WithArgs(int64(42),
			dateRange.Start, dateRange.End,
			dateRange.Start, dateRange.End,
			dateRange.Start, dateRange.End).
		WillReturnRows(eventRow(event, 10, event.StartTime))

	events, err := repo.GetUserEventsByDateRange(ctx, 42, dateRange)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestGetUserEvents_QueryError(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT e.event_id").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetUserEvents(ctx, 42)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestUpdateEvent_StartTimeChangeResyncsCountdown(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	newStart := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	newTitle := "Rescheduled dentist"
	update := models.EventUpdate{Title: &newTitle, StartTime: &newStart}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE events").
		WithArgs(newTitle, newStart, int64(10), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO event_updates").
		WithArgs(int64(10), int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE countdowns").
		WithArgs(newStart, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateEvent(ctx, 10, 42, update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateEvent_NoStartChangeSkipsCountdown(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	newTitle := "Renamed"
	update := models.EventUpdate{Title: &newTitle}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE events").
		WithArgs(newTitle, int64(10), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO event_updates").
		WithArgs(int64(10), int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.UpdateEvent(ctx, 10, 42, update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateEvent_EmptyUpdate(t *testing.T) {
	repo, _, db := newTestEventRepo(t)
	defer db.Close()

	err := repo.UpdateEvent(context.Background(), 10, 42, models.EventUpdate{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()
	newTitle := "Renamed"
	update := models.EventUpdate{Title: &newTitle}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE events").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateEvent(ctx, 99, 42, update)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteEvent_Success(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
	mock.ExpectExec("DELETE FROM countdowns").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM event_summaries").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM event_updates").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM events").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteEvent(ctx, 10, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.DeleteEvent(ctx, 99, 42)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteEvent_WrongOwner(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectRollback()

	err := repo.DeleteEvent(ctx, 10, 42)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound for foreign event, got %v", err)
	}
}

func TestUpsertEventSummary_InsertsWhenMissing(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
	mock.ExpectQuery("SELECT event_id FROM event_summaries").
		WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO event_summaries").
		WithArgs(int64(10), "went well").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.UpsertEventSummary(ctx, 10, 42, "went well"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertEventSummary_UpdatesWhenPresent(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
	mock.ExpectQuery("SELECT event_id FROM event_summaries").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow(10))
	mock.ExpectExec("UPDATE event_summaries").
		WithArgs("revised text", int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpsertEventSummary(ctx, 10, 42, "revised text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpsertEventSummary_ForeignEvent(t *testing.T) {
	repo, mock, db := newTestEventRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT user_id FROM events").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
	mock.ExpectRollback()

	err := repo.UpsertEventSummary(ctx, 10, 42, "text")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
