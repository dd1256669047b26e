// Package service implements administrative donor operations: roster
// retrieval, record lookup, partial updates, and deletion. Donor creation
// lives in the registration coordinator, not here.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"bloodcamp/internal/donor/models"
	"bloodcamp/internal/eligibility"
	dErrors "bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/sentinel"
)

// Store is the donor persistence the service depends on.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Donor, error)
	FindByCamp(ctx context.Context, campID uuid.UUID) ([]*models.Donor, error)
	Update(ctx context.Context, donor *models.Donor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// UpdateParams carries the fields an administrator may change. Nil fields
// are left untouched.
type UpdateParams struct {
	Name       *string
	Email      *string
	Phone      *string
	Address    *string
	WeightKg   *float64
	BloodGroup *string
	Remark     *string
}

func (p UpdateParams) apply(donor *models.Donor) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return dErrors.New(dErrors.CodeValidation, "donor name cannot be empty")
		}
		donor.Name = name
	}
	if p.Email != nil {
		donor.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		if len(phone) < eligibility.MinPhoneLength {
			return dErrors.New(dErrors.CodeValidation, "valid phone number required")
		}
		donor.Phone = phone
	}
	if p.Address != nil {
		address := strings.TrimSpace(*p.Address)
		if address == "" {
			return dErrors.New(dErrors.CodeValidation, "address is required")
		}
		donor.Address = address
	}
	if p.WeightKg != nil {
		if *p.WeightKg < eligibility.MinWeightKg {
			return dErrors.New(dErrors.CodeValidation, "minimum weight 50kg required")
		}
		donor.WeightKg = *p.WeightKg
	}
	if p.BloodGroup != nil {
		group := eligibility.BloodGroup(strings.TrimSpace(*p.BloodGroup))
		if !group.Valid() {
			return dErrors.New(dErrors.CodeValidation, "invalid blood group")
		}
		donor.BloodGroup = group
	}
	if p.Remark != nil {
		donor.Remark = strings.TrimSpace(*p.Remark)
	}
	return nil
}

func (s *Service) GetDonor(ctx context.Context, id uuid.UUID) (*models.Donor, error) {
	donor, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapDonorErr(err)
	}
	return donor, nil
}

// Roster returns all donors registered at a camp, sorted by name.
func (s *Service) Roster(ctx context.Context, campID uuid.UUID) ([]*models.Donor, error) {
	donors, err := s.store.FindByCamp(ctx, campID)
	if err != nil {
		return nil, wrapDonorErr(err)
	}
	return donors, nil
}

func (s *Service) UpdateDonor(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Donor, error) {
	donor, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapDonorErr(err)
	}
	if err := params.apply(donor); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, donor); err != nil {
		return nil, wrapDonorErr(err)
	}
	s.logger.Info("donor updated", "donor_id", donor.ID)
	return donor, nil
}

func (s *Service) DeleteDonor(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapDonorErr(err)
	}
	s.logger.Info("donor deleted", "donor_id", id)
	return nil
}

func wrapDonorErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Donor not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "donor storage failure")
}
