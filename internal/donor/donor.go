package donor

import (
	"log/slog"

	"bloodcamp/internal/donor/handler"
	"bloodcamp/internal/donor/service"
)

// Service exposes administrative donor operations.
type Service = service.Service

// Handler wires HTTP endpoints to the donor service.
type Handler = handler.Handler

// NewService constructs the donor service with required dependencies.
func NewService(store service.Store, logger *slog.Logger) *Service {
	return service.New(store, logger)
}

// NewHandler constructs an HTTP handler for donor administration routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
