package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/events/{userId}", h.getUserEvents)
		r.Get("/api/events/{userId}/range", h.getUserEventsByDateRange)
		r.Post("/api/events", h.createEvent)
		r.Put("/api/events/{eventId}", h.updateEvent)
		r.Delete("/api/events/{eventId}", h.deleteEvent)
		r.Post("/api/events/{eventId}/summary", h.createEventSummary)
	})

	return router
}
