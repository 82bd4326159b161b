package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/utils"
	"github.com/vrudenko/calendar-keeper/models"
)

const invalidJSONMessage = "Invalid JSON was passed"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(invalidJSONMessage)
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")

	utils.WriteJSON(w, models.Response{Success: true, Message: "User created successfully"}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg(invalidJSONMessage)
		utils.WriteJSON(w, models.Response{Success: false, Message: invalidJSONMessage}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", foundUser.UserID).Msg("user logged in")

	profile := foundUser.Profile()
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Response: models.Response{Success: true, Message: "Login successful"},
		User:     &profile,
	}, http.StatusOK)
}
