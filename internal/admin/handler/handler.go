package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bloodcamp/pkg/httputil"
)

// Service defines the admin operations the handler needs.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler wires the admin login endpoint.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the login endpoint. Login is public; everything else
// behind the admin guard.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/admin/login", h.HandleLogin)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[loginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	signed, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": signed})
}
