package service

import (
	"github.com/vrudenko/calendar-keeper/internal/config"
	"github.com/vrudenko/calendar-keeper/internal/logger"
	"github.com/vrudenko/calendar-keeper/internal/store"
)

type Services struct {
	AuthService  AuthService
	EventService EventService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, cfg.App, logger),
		EventService: NewEventService(storages.EventRepository, logger),
	}
}
