package camp

import (
	"log/slog"

	"bloodcamp/internal/camp/handler"
	"bloodcamp/internal/camp/service"
)

// Service exposes camp management and availability resolution.
type Service = service.Service

// Handler wires HTTP endpoints to the camp service.
type Handler = handler.Handler

// NewService constructs the camp service with required dependencies.
func NewService(store service.Store, logger *slog.Logger) *Service {
	return service.New(store, logger)
}

// NewHandler constructs an HTTP handler for camp routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
