// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Rudenko

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/store"
	"github.com/vrudenko/calendar-keeper/internal/utils"
	"github.com/vrudenko/calendar-keeper/internal/validators"
	"github.com/vrudenko/calendar-keeper/models"
)

const (
	forbiddenMessage       = "Forbidden"
	invalidDateMessage     = "Invalid start or end date"
	eventNotFoundUpdateMsg = "Event not found or you do not have permission to update it"
	eventNotFoundDeleteMsg = "Event not found or you do not have permission to delete it"
)

// dateOnlyLayout accepts calendar dates without a time component, the form
// the calendar widget sends for visible-month range queries.
const dateOnlyLayout = "2006-01-02"

func (h *Handler) getUserEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.pathID(w, r, "userId", validators.ErrInvalidUserID)
	if !ok {
		return
	}
	if !h.assertActingUser(w, r, userID) {
		return
	}

	events, err := h.services.EventService.GetUserEvents(ctx, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.EventsResponse{
		Response: models.Response{Success: true},
		Events:   events,
	}, http.StatusOK)
}

func (h *Handler) getUserEventsByDateRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.pathID(w, r, "userId", validators.ErrInvalidUserID)
	if !ok {
		return
	}
	if !h.assertActingUser(w, r, userID) {
		return
	}

	start, err := parseRangeBound(r.URL.Query().Get("start"), false)
	if err != nil {
		log.Warn().Err(err).Msg("bad range start")
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidDateMessage}, http.StatusBadRequest)
		return
	}

	end, err := parseRangeBound(r.URL.Query().Get("end"), true)
	if err != nil {
		log.Warn().Err(err).Msg("bad range end")
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidDateMessage}, http.StatusBadRequest)
		return
	}

	events, err := h.services.EventService.GetUserEventsByDateRange(ctx, userID, models.DateRange{Start: start, End: end})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.EventsResponse{
		Response: models.Response{Success: true},
		Events:   events,
	}, http.StatusOK)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Msg(invalidJSONMessage)
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	if !h.assertActingUser(w, r, event.UserID) {
		return
	}

	createdEvent, err := h.services.EventService.CreateEvent(ctx, event)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Info().Int64("event_id", createdEvent.EventID).Msg("event created")

	utils.WriteJSON(w, models.CreateEventResponse{
		Response: models.Response{Success: true, Message: "Event created successfully"},
		EventID:  createdEvent.EventID,
	}, http.StatusCreated)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	eventID, ok := h.pathID(w, r, "eventId", validators.ErrInvalidEventID)
	if !ok {
		return
	}

	var payload struct {
		models.EventUpdate
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg(invalidJSONMessage)
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	userID, ok := h.actingUser(w, r, payload.UserID)
	if !ok {
		return
	}

	if err := h.services.EventService.UpdateEvent(ctx, eventID, userID, payload.EventUpdate); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			h.respondError(w, r, err, eventNotFoundUpdateMsg)
			return
		}
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "Event updated successfully"}, http.StatusOK)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	eventID, ok := h.pathID(w, r, "eventId", validators.ErrInvalidEventID)
	if !ok {
		return
	}

	var requestedUserID int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn().Str("userId", raw).Msg("bad userId query parameter")
			h.respondError(w, r, validators.ErrInvalidUserID)
			return
		}
		requestedUserID = parsed
	}

	userID, ok := h.actingUser(w, r, requestedUserID)
	if !ok {
		return
	}

	if err := h.services.EventService.DeleteEvent(ctx, eventID, userID); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			h.respondError(w, r, err, eventNotFoundDeleteMsg)
			return
		}
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "Event deleted successfully"}, http.StatusOK)
}

func (h *Handler) createEventSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	eventID, ok := h.pathID(w, r, "eventId", validators.ErrInvalidEventID)
	if !ok {
		return
	}

	var request models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(invalidJSONMessage)
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	userID, ok := h.actingUser(w, r, request.UserID)
	if !ok {
		return
	}

	if err := h.services.EventService.CreateEventSummary(ctx, eventID, userID, request.SummaryText); err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: "Summary added successfully"}, http.StatusCreated)
}

// pathID parses the named chi URL parameter as a positive int64 id. On
// failure it writes the mapped error response and reports false.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string, invalidErr error) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, r, invalidErr)
		return 0, false
	}
	return id, true
}

// assertActingUser verifies that the authenticated user id from the request
// context matches requestedUserID. The token is the authority: a mismatch is
// rejected with 403 regardless of what the payload claims.
func (h *Handler) assertActingUser(w http.ResponseWriter, r *http.Request, requestedUserID int64) bool {
	log := logger.FromRequest(r)

	authenticatedUserID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated user in context")
		unauthorized(w, http.StatusText(http.StatusUnauthorized))
		return false
	}

	if requestedUserID != authenticatedUserID {
		log.Warn().
			Int64("authenticated_user_id", authenticatedUserID).
			Int64("requested_user_id", requestedUserID).
			Msg("user id mismatch")
		utils.WriteJSON(w, models.Response{Success: false, Message: forbiddenMessage}, http.StatusForbidden)
		return false
	}

	return true
}

// actingUser resolves the user id a mutation acts for. A zero
// requestedUserID defaults to the authenticated user; a non-zero one must
// match it.
func (h *Handler) actingUser(w http.ResponseWriter, r *http.Request, requestedUserID int64) (int64, bool) {
	log := logger.FromRequest(r)

	authenticatedUserID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated user in context")
		unauthorized(w, http.StatusText(http.StatusUnauthorized))
		return 0, false
	}

	if requestedUserID != 0 && requestedUserID != authenticatedUserID {
		log.Warn().
			Int64("authenticated_user_id", authenticatedUserID).
			Int64("requested_user_id", requestedUserID).
			Msg("user id mismatch")
		utils.WriteJSON(w, models.Response{Success: false, Message: forbiddenMessage}, http.StatusForbidden)
		return 0, false
	}

	return authenticatedUserID, true
}

// parseRangeBound parses a range boundary that may arrive either as a full
// RFC 3339 timestamp or as a bare calendar date. A bare date used as the end
// boundary is extended to the last instant of that day so a single-day range
// still matches events inside it.
func parseRangeBound(value string, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, err
	}

	if isEnd {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
