package http

import (
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/service"
	"github.com/vrudenko/calendar-keeper/internal/utils"
)

type Handler struct {
	services *service.Services

	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        logger,
	}
}
