package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	campmodels "bloodcamp/internal/camp/models"
	donormodels "bloodcamp/internal/donor/models"
	"bloodcamp/internal/eligibility"
	"bloodcamp/internal/registration"
	"bloodcamp/pkg/httputil"
)

// Coordinator is the registration flow the handler drives.
type Coordinator interface {
	OpenSession(ctx context.Context, referral string) (*registration.Session, error)
	Register(ctx context.Context, candidate eligibility.Candidate) (*donormodels.Donor, error)
}

// Handler exposes the public registration endpoints.
type Handler struct {
	coordinator Coordinator
	logger      *slog.Logger
}

func New(coordinator Coordinator, logger *slog.Logger) *Handler {
	return &Handler{coordinator: coordinator, logger: logger}
}

// Register mounts the public registration endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/donors/register", h.HandleOpenRegistration)
	r.Post("/api/donors", h.HandleRegisterDonor)
}

// registrationView is the form bootstrap payload: the camps open for
// registration, the referral binding when locked, and any notice.
type registrationView struct {
	Camps      []*campmodels.Camp `json:"camps"`
	LockedCamp *campmodels.Camp   `json:"lockedCamp,omitempty"`
	Notice     string             `json:"notice,omitempty"`
}

// HandleOpenRegistration serves the registration form's initial data. A
// ?campId= referral is resolved and, when the camp is upcoming, locked.
func (h *Handler) HandleOpenRegistration(w http.ResponseWriter, r *http.Request) {
	session, err := h.coordinator.OpenSession(r.Context(), r.URL.Query().Get("campId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view := registrationView{
		Camps:      session.UpcomingCamps(),
		LockedCamp: session.LockedCamp(),
		Notice:     session.Notice(),
	}
	if view.Camps == nil {
		view.Camps = []*campmodels.Camp{}
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[RegisterDonorRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donor, err := h.coordinator.Register(r.Context(), req.Candidate())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Donor registered",
		"donor":   donor,
	})
}
