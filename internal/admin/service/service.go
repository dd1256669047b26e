// Package service implements admin login and the startup bootstrap.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bloodcamp/internal/admin/models"
	dErrors "bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/sentinel"
)

// Store is the admin persistence the service depends on.
type Store interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// TokenIssuer signs an access token for an authenticated admin.
type TokenIssuer interface {
	Generate(adminID uuid.UUID) (string, error)
}

// BootstrapConfig is the injected seed identity. Both fields must be set
// for bootstrap to run; partial configuration is skipped with a log line.
type BootstrapConfig struct {
	Email    string
	Password string
}

type Service struct {
	store  Store
	tokens TokenIssuer
	logger *slog.Logger
}

func New(store Store, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Login verifies the credentials and issues an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", dErrors.New(dErrors.CodeValidation, "email and password are required")
	}

	admin, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "admin lookup failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}

	signed, err := s.tokens.Generate(admin.ID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "token generation failed")
	}
	s.logger.Info("admin logged in", "admin_id", admin.ID)
	return signed, nil
}

// Bootstrap creates the seed admin once at process start. It is idempotent:
// an existing record or an unset config is logged and skipped, and bootstrap
// failures never abort startup decisions beyond the returned error.
func (s *Service) Bootstrap(ctx context.Context, cfg BootstrapConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		s.logger.Info("skipping admin bootstrap, email or password not configured")
		return nil
	}

	if _, err := s.store.FindByEmail(ctx, cfg.Email); err == nil {
		s.logger.Info("admin already exists, bootstrap skipped", "email", cfg.Email)
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "admin bootstrap lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "admin bootstrap hash failed")
	}

	admin := &models.Admin{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(cfg.Email)),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.logger.Info("admin already exists, bootstrap skipped", "email", cfg.Email)
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "admin bootstrap create failed")
	}
	s.logger.Info("default admin created", "email", admin.Email)
	return nil
}
