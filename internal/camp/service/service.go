// Package service orchestrates camp management and camp availability. The
// availability resolver decides which camps may receive new donor
// registrations; administrative CRUD lives here too.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bloodcamp/internal/camp/models"
	"bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/requestcontext"
	"bloodcamp/pkg/sentinel"
)

// Store is the camp persistence contract.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, camp *models.Camp) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Camp, error)
	ListAll(ctx context.Context) ([]*models.Camp, error)
	Update(ctx context.Context, camp *models.Camp) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages camps.
type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CampParams carries camp fields for create and update operations.
type CampParams struct {
	Name             string
	Location         string
	Date             *time.Time
	OrganizerName    string
	OrganizerContact string
	ProName          string
	HospitalName     string
}

func (p *CampParams) apply(camp *models.Camp) {
	camp.Location = strings.TrimSpace(p.Location)
	camp.Date = p.Date
	camp.OrganizerName = strings.TrimSpace(p.OrganizerName)
	camp.OrganizerContact = strings.TrimSpace(p.OrganizerContact)
	camp.ProName = strings.TrimSpace(p.ProName)
	camp.HospitalName = strings.TrimSpace(p.HospitalName)
}

func (s *Service) CreateCamp(ctx context.Context, params CampParams) (*models.Camp, error) {
	camp, err := models.NewCamp(uuid.New(), params.Name, requestcontext.Now(ctx))
	if err != nil {
		if domainerrors.HasCode(err, domainerrors.CodeInvariantViolation) {
			return nil, domainerrors.New(domainerrors.CodeValidation, "camp name is required")
		}
		return nil, err
	}
	params.apply(camp)

	if err := s.store.CreateIfNameAvailable(ctx, camp); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, domainerrors.New(domainerrors.CodeConflict, "a camp with this name already exists")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create camp")
	}

	s.logger.InfoContext(ctx, "camp created",
		"camp_id", camp.ID,
		"camp_name", camp.Name,
		"request_id", requestcontext.RequestID(ctx),
	)
	return camp, nil
}

func (s *Service) GetCamp(ctx context.Context, id uuid.UUID) (*models.Camp, error) {
	camp, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapCampErr(err)
	}
	return camp, nil
}

// ListCamps returns every camp regardless of date. The registration flow and
// the admin overview both start from this set.
func (s *Service) ListCamps(ctx context.Context) ([]*models.Camp, error) {
	camps, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list camps")
	}
	return camps, nil
}

// UpcomingCamps returns the camps currently open to registrations, sorted by
// date ascending. This is the candidate set a registration session works
// from.
func (s *Service) UpcomingCamps(ctx context.Context) ([]*models.Camp, error) {
	camps, err := s.ListCamps(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	upcoming := camps[:0]
	for _, camp := range camps {
		if camp.IsUpcoming(now) {
			upcoming = append(upcoming, camp)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(*upcoming[j].Date)
	})
	return upcoming, nil
}

func (s *Service) UpdateCamp(ctx context.Context, id uuid.UUID, params CampParams) (*models.Camp, error) {
	camp, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapCampErr(err)
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, domainerrors.New(domainerrors.CodeValidation, "camp name is required")
	}
	camp.Name = name
	params.apply(camp)
	camp.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, camp); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, domainerrors.New(domainerrors.CodeConflict, "a camp with this name already exists")
		}
		return nil, wrapCampErr(err)
	}
	return camp, nil
}

func (s *Service) DeleteCamp(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapCampErr(err)
	}
	s.logger.InfoContext(ctx, "camp deleted",
		"camp_id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// Resolve looks a camp reference up inside a previously fetched candidate
// list. Absence is a fact, not an error: the coordinator decides how hard to
// fail.
func Resolve(campID uuid.UUID, camps []*models.Camp) (*models.Camp, bool) {
	for _, camp := range camps {
		if camp.ID == campID {
			return camp, true
		}
	}
	return nil, false
}

func wrapCampErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return domainerrors.New(domainerrors.CodeNotFound, "camp not found")
	}
	return domainerrors.Wrap(err, domainerrors.CodeInternal, "camp store failure")
}
