package http

import (
	"errors"
	"net/http"

	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/service"
	"github.com/vrudenko/calendar-keeper/internal/store"
	"github.com/vrudenko/calendar-keeper/internal/utils"
	"github.com/vrudenko/calendar-keeper/internal/validators"
	"github.com/vrudenko/calendar-keeper/models"
)

// serverErrorMessage is the only text a caller ever sees for an unmapped
// failure; the real cause stays in the server log.
const serverErrorMessage = "Server error"

var errorStatusMap = map[error]int{
	validators.ErrFirstNameRequired:    http.StatusBadRequest,
	validators.ErrLastNameRequired:     http.StatusBadRequest,
	validators.ErrMiddleInitialTooLong: http.StatusBadRequest,
	validators.ErrUsernameTooShort:     http.StatusBadRequest,
	validators.ErrInvalidEmail:         http.StatusBadRequest,
	validators.ErrInvalidPhoneNumber:   http.StatusBadRequest,
	validators.ErrPasswordTooShort:     http.StatusBadRequest,
	validators.ErrTitleRequired:        http.StatusBadRequest,
	validators.ErrEventTypeRequired:    http.StatusBadRequest,
	validators.ErrStartTimeRequired:    http.StatusBadRequest,
	validators.ErrEndTimeRequired:      http.StatusBadRequest,
	validators.ErrCategoryRequired:     http.StatusBadRequest,
	validators.ErrPriorityRequired:     http.StatusBadRequest,
	validators.ErrSummaryTextRequired:  http.StatusBadRequest,
	validators.ErrNoFieldsToUpdate:     http.StatusBadRequest,
	validators.ErrInvalidUserID:        http.StatusBadRequest,
	validators.ErrInvalidEventID:       http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidDateRange:        http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrUsernameOrEmailTaken: http.StatusConflict,
	store.ErrUserNotFound:         http.StatusNotFound,
	store.ErrEventNotFound:        http.StatusNotFound,
	store.ErrNoFieldsToUpdate:     http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// errorMessageMap overrides the default message (the error's own text) for
// sentinels whose wire form differs from the internal one.
var errorMessageMap = map[error]string{
	store.ErrUsernameOrEmailTaken: "Username or email already exists",
	store.ErrEventNotFound:        "Event not found or you do not have permission",
	store.ErrNoFieldsToUpdate:     "No fields to update",
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		return serverErrorMessage
	}

	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}

	return err.Error()
}

// respondError maps err onto the envelope and status taught by the tables
// above. An optional message overrides the mapped one; internal server
// failures always surface as the generic serverErrorMessage.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, message ...string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	responseMessage := messageFromError(err, status)
	if len(message) > 0 && status != http.StatusInternalServerError {
		responseMessage = message[0]
	}

	if status == http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.Response{Success: false, Message: responseMessage}, status)
}
