package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	donormodels "bloodcamp/internal/donor/models"
	"bloodcamp/internal/donor/service"
	"bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/httputil"
)

// Service defines the donor operations the handler needs.
type Service interface {
	GetDonor(ctx context.Context, id uuid.UUID) (*donormodels.Donor, error)
	Roster(ctx context.Context, campID uuid.UUID) ([]*donormodels.Donor, error)
	UpdateDonor(ctx context.Context, id uuid.UUID, params service.UpdateParams) (*donormodels.Donor, error)
	DeleteDonor(ctx context.Context, id uuid.UUID) error
}

// Handler wires donor administration endpoints to the donor service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the donor management endpoints. The caller applies
// the admin guard.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/api/donors/camp/{campID}", h.HandleRoster)
	r.Get("/api/donors/{donorID}", h.HandleGetDonor)
	r.Put("/api/donors/{donorID}", h.HandleUpdateDonor)
	r.Delete("/api/donors/{donorID}", h.HandleDeleteDonor)
}

// HandleRoster returns every donor registered at a camp, sorted by name.
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	campID, err := uuid.Parse(chi.URLParam(r, "campID"))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "Invalid camp id"))
		return
	}

	donors, err := h.service.Roster(r.Context(), campID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if donors == nil {
		donors = []*donormodels.Donor{}
	}
	httputil.WriteJSON(w, http.StatusOK, donors)
}

func (h *Handler) HandleGetDonor(w http.ResponseWriter, r *http.Request) {
	donorID, ok := h.donorID(w, r)
	if !ok {
		return
	}

	donor, err := h.service.GetDonor(r.Context(), donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, donor)
}

func (h *Handler) HandleUpdateDonor(w http.ResponseWriter, r *http.Request) {
	donorID, ok := h.donorID(w, r)
	if !ok {
		return
	}

	req, err := httputil.DecodeJSON[UpdateDonorRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donor, err := h.service.UpdateDonor(r.Context(), donorID, req.Params())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, donor)
}

func (h *Handler) HandleDeleteDonor(w http.ResponseWriter, r *http.Request) {
	donorID, ok := h.donorID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteDonor(r.Context(), donorID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Donor deleted successfully"})
}

func (h *Handler) donorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	donorID, err := uuid.Parse(chi.URLParam(r, "donorID"))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "Invalid donor id"))
		return uuid.Nil, false
	}
	return donorID, true
}
