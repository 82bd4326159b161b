// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Rudenko

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrudenko/calendar-keeper/internal/mock"
	"github.com/vrudenko/calendar-keeper/internal/service"
	"github.com/vrudenko/calendar-keeper/internal/store"
	"github.com/vrudenko/calendar-keeper/internal/validators"
	"github.com/vrudenko/calendar-keeper/models"
	"go.uber.org/mock/gomock"
)

const testBearerToken = "valid.jwt.token"

// newAuthedRouter builds the router with the auth middleware primed to
// accept testBearerToken as user 42.
func newAuthedRouter(t *testing.T, ctrl *gomock.Controller) (http.Handler, *mock.MockEventService) {
	t.Helper()

	router, mockAuth, mockEvents := newTestRouter(t, ctrl)
	mockAuth.EXPECT().ParseToken(gomock.Any(), testBearerToken).
		Return(models.Token{UserID: 42}, nil).
		AnyTimes()

	return router, mockEvents
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testBearerToken)
	return req
}

func sampleEvent() models.Event {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return models.Event{
		EventID:     10,
		UserID:      42,
		EventType:   models.EventTypePersonal,
		Title:       "Dentist appointment",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Category:    "Health",
		Priority:    models.PriorityUrgentImportant,
		EventStatus: models.EventStatusActive,
	}
}

// ── authentication ───────────────────────────────────────────────────────────

func TestEvents_MissingAuthorizationHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := newTestRouter(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/events/42", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
}

func TestEvents_RejectedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockAuth, _ := newTestRouter(t, ctrl)

	mockAuth.EXPECT().ParseToken(gomock.Any(), "bad-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	req := httptest.NewRequest(http.MethodGet, "/api/events/42", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── list events ──────────────────────────────────────────────────────────────

func TestGetUserEvents_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().GetUserEvents(gomock.Any(), int64(42)).
		Return([]models.Event{sampleEvent()}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/events/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Dentist appointment", resp.Events[0].Title)
}

func TestGetUserEvents_ForeignUserForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newAuthedRouter(t, ctrl)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/events/7", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Forbidden", resp.Message)
}

func TestGetUserEvents_BadUserIDParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newAuthedRouter(t, ctrl)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/events/abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── list events by range ─────────────────────────────────────────────────────

func TestGetUserEventsByDateRange_DateOnlyEndExtendsToEndOfDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().GetUserEventsByDateRange(gomock.Any(), int64(42), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, dateRange models.DateRange) ([]models.Event, error) {
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), dateRange.Start)
			// a single calendar date as the end bound covers the whole day
			assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC), dateRange.End)
			return []models.Event{sampleEvent()}, nil
		},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/events/42/range?start=2026-03-01&end=2026-03-31", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.EventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Events, 1)
}

func TestGetUserEventsByDateRange_RFC3339BoundsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	mockEvents.EXPECT().GetUserEventsByDateRange(gomock.Any(), int64(42), models.DateRange{Start: start, End: end}).
		Return([]models.Event{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet,
		"/api/events/42/range?start=2026-03-14T09:30:00Z&end=2026-03-14T18:00:00Z", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserEventsByDateRange_BadDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newAuthedRouter(t, ctrl)

	for _, target := range []string{
		"/api/events/42/range?start=March&end=2026-03-31",
		"/api/events/42/range?start=2026-03-01&end=soon",
		"/api/events/42/range?end=2026-03-31",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		resp := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid start or end date", resp.Message)
	}
}

func TestGetUserEventsByDateRange_EndBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().GetUserEventsByDateRange(gomock.Any(), int64(42), gomock.Any()).
		Return(nil, service.ErrInvalidDateRange)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/events/42/range?start=2026-03-31&end=2026-03-01", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── create event ─────────────────────────────────────────────────────────────

func TestCreateEvent_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	event := sampleEvent()
	event.EventID = 0

	mockEvents.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.Event) (models.Event, error) {
			assert.Equal(t, event.Title, e.Title)
			e.EventID = 10
			return e, nil
		},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events", jsonBody(t, event)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.CreateEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Event created successfully", resp.Message)
	assert.Equal(t, int64(10), resp.EventID)
}

func TestCreateEvent_ForeignUserForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newAuthedRouter(t, ctrl)

	event := sampleEvent()
	event.UserID = 7

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events", jsonBody(t, event)))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateEvent_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().CreateEvent(gomock.Any(), gomock.Any()).
		Return(models.Event{}, validators.ErrTitleRequired)

	event := sampleEvent()
	event.Title = ""

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events", jsonBody(t, event)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Title is required", resp.Message)
}

// ── update event ─────────────────────────────────────────────────────────────

func TestUpdateEvent_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().UpdateEvent(gomock.Any(), int64(10), int64(42), gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ int64, update models.EventUpdate) error {
			require.NotNil(t, update.Title)
			assert.Equal(t, "Rescheduled appointment", *update.Title)
			assert.Nil(t, update.StartTime)
			return nil
		},
	)

	body := strings.NewReader(`{"user_id": 42, "title": "Rescheduled appointment"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/events/10", body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Event updated successfully", resp.Message)
}

func TestUpdateEvent_UserIDDefaultsToToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().UpdateEvent(gomock.Any(), int64(10), int64(42), gomock.Any()).Return(nil)

	body := strings.NewReader(`{"title": "Rescheduled appointment"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/events/10", body))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().UpdateEvent(gomock.Any(), int64(10), int64(42), gomock.Any()).
		Return(store.ErrEventNotFound)

	body := strings.NewReader(`{"user_id": 42, "title": "Rescheduled appointment"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/events/10", body))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Event not found or you do not have permission to update it", resp.Message)
}

func TestUpdateEvent_EmptyPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().UpdateEvent(gomock.Any(), int64(10), int64(42), models.EventUpdate{}).
		Return(validators.ErrNoFieldsToUpdate)

	body := strings.NewReader(`{"user_id": 42}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/events/10", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "No fields to update", resp.Message)
}

// ── delete event ─────────────────────────────────────────────────────────────

func TestDeleteEvent_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().DeleteEvent(gomock.Any(), int64(10), int64(42)).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/events/10?userId=42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Event deleted successfully", resp.Message)
}

func TestDeleteEvent_ForeignUserForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newAuthedRouter(t, ctrl)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/events/10?userId=7", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().DeleteEvent(gomock.Any(), int64(10), int64(42)).
		Return(store.ErrEventNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/events/10", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Event not found or you do not have permission to delete it", resp.Message)
}

// ── event summary ────────────────────────────────────────────────────────────

func TestCreateEventSummary_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().CreateEventSummary(gomock.Any(), int64(10), int64(42), "went well").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events/10/summary",
		jsonBody(t, models.SummaryRequest{UserID: 42, SummaryText: "went well"})))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Summary added successfully", resp.Message)
}

func TestCreateEventSummary_ForeignEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mockEvents := newAuthedRouter(t, ctrl)

	mockEvents.EXPECT().CreateEventSummary(gomock.Any(), int64(10), int64(42), "went well").
		Return(store.ErrEventNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/events/10/summary",
		jsonBody(t, models.SummaryRequest{UserID: 42, SummaryText: "went well"})))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Event not found or you do not have permission", resp.Message)
}
