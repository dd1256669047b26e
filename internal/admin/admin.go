package admin

import (
	"log/slog"
	"time"

	"bloodcamp/internal/admin/handler"
	"bloodcamp/internal/admin/service"
	"bloodcamp/internal/admin/token"
)

// Service exposes admin login and bootstrap.
type Service = service.Service

// Handler wires the admin login endpoint.
type Handler = handler.Handler

// TokenService issues and validates admin access tokens.
type TokenService = token.Service

// DefaultTokenTTL is the standard admin token lifetime.
const DefaultTokenTTL = token.DefaultTTL

// BootstrapConfig is the injected seed identity for Bootstrap.
type BootstrapConfig = service.BootstrapConfig

// NewTokenService constructs the HS256 token service.
func NewTokenService(signingKey string, ttl time.Duration) *TokenService {
	return token.NewService(signingKey, ttl)
}

// NewService constructs the admin service with required dependencies.
func NewService(store service.Store, tokens service.TokenIssuer, logger *slog.Logger) *Service {
	return service.New(store, tokens, logger)
}

// NewHandler constructs an HTTP handler for the admin routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
