package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	campmodels "bloodcamp/internal/camp/models"
	"bloodcamp/internal/camp/service"
	"bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/httputil"
)

// Service defines the camp operations the handler needs.
type Service interface {
	CreateCamp(ctx context.Context, params service.CampParams) (*campmodels.Camp, error)
	GetCamp(ctx context.Context, id uuid.UUID) (*campmodels.Camp, error)
	ListCamps(ctx context.Context) ([]*campmodels.Camp, error)
	UpcomingCamps(ctx context.Context) ([]*campmodels.Camp, error)
	UpdateCamp(ctx context.Context, id uuid.UUID, params service.CampParams) (*campmodels.Camp, error)
	DeleteCamp(ctx context.Context, id uuid.UUID) error
}

// Handler wires camp endpoints to the camp service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the endpoints the registration form uses.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/api/camps", h.HandleListCamps)
}

// RegisterAdmin mounts the camp management endpoints. The caller applies the
// admin guard.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/api/admin/camps", h.HandleCreateCamp)
	r.Get("/api/admin/camps", h.HandleListCamps)
	r.Get("/api/admin/camps/{campID}", h.HandleGetCamp)
	r.Put("/api/admin/camps/{campID}", h.HandleUpdateCamp)
	r.Delete("/api/admin/camps/{campID}", h.HandleDeleteCamp)
}

// HandleListCamps returns all camps, or only currently upcoming ones when
// ?upcoming=true.
func (h *Handler) HandleListCamps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var camps []*campmodels.Camp
	var err error
	if r.URL.Query().Get("upcoming") == "true" {
		camps, err = h.service.UpcomingCamps(ctx)
	} else {
		camps, err = h.service.ListCamps(ctx)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if camps == nil {
		camps = []*campmodels.Camp{}
	}
	httputil.WriteJSON(w, http.StatusOK, camps)
}

func (h *Handler) HandleCreateCamp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.DecodeJSON[CampRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	params, err := req.Params()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	camp, err := h.service.CreateCamp(ctx, params)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, camp)
}

func (h *Handler) HandleGetCamp(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	camp, err := h.service.GetCamp(r.Context(), campID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, camp)
}

func (h *Handler) HandleUpdateCamp(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	req, err := httputil.DecodeJSON[CampRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	params, err := req.Params()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	camp, err := h.service.UpdateCamp(r.Context(), campID, params)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, camp)
}

func (h *Handler) HandleDeleteCamp(w http.ResponseWriter, r *http.Request) {
	campID, ok := h.campID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCamp(r.Context(), campID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Camp deleted successfully"})
}

func (h *Handler) campID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	campID, err := uuid.Parse(chi.URLParam(r, "campID"))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "Invalid camp id"))
		return uuid.Nil, false
	}
	return campID, true
}
