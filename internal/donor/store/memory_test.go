package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"bloodcamp/internal/donor/models"
	"bloodcamp/internal/eligibility"
	"bloodcamp/pkg/sentinel"
)

type DonorStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestDonorStoreSuite(t *testing.T) {
	suite.Run(t, new(DonorStoreSuite))
}

func (s *DonorStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *DonorStoreSuite) newDonor(name string, campID uuid.UUID) *models.Donor {
	return &models.Donor{
		ID:         uuid.New(),
		Name:       name,
		DOB:        time.Date(1990, 3, 12, 0, 0, 0, 0, time.UTC),
		Age:        36,
		WeightKg:   72,
		BloodGroup: eligibility.BloodGroupOPos,
		Email:      "donor@example.com",
		Phone:      "5550100",
		Address:    "12 Mill Lane",
		CampID:     campID,
		CreatedAt:  time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *DonorStoreSuite) TestCreateAndFind() {
	campID := uuid.New()
	donor := s.newDonor("Asha", campID)

	s.Require().NoError(s.store.Create(s.ctx, donor))

	found, err := s.store.FindByID(s.ctx, donor.ID)
	s.Require().NoError(err)
	s.Equal(donor.Name, found.Name)
	s.Equal(campID, found.CampID)
}

func (s *DonorStoreSuite) TestCreateDuplicateID() {
	donor := s.newDonor("Asha", uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, donor))

	err := s.store.Create(s.ctx, donor)
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *DonorStoreSuite) TestFindByIDMissing() {
	_, err := s.store.FindByID(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorStoreSuite) TestFindByCampSortsByName() {
	campID := uuid.New()
	otherCamp := uuid.New()
	s.Require().NoError(s.store.Create(s.ctx, s.newDonor("zoya", campID)))
	s.Require().NoError(s.store.Create(s.ctx, s.newDonor("Ben", campID)))
	s.Require().NoError(s.store.Create(s.ctx, s.newDonor("amir", campID)))
	s.Require().NoError(s.store.Create(s.ctx, s.newDonor("Omar", otherCamp)))

	roster, err := s.store.FindByCamp(s.ctx, campID)
	s.Require().NoError(err)
	s.Require().Len(roster, 3)
	s.Equal("amir", roster[0].Name)
	s.Equal("Ben", roster[1].Name)
	s.Equal("zoya", roster[2].Name)
}

func (s *DonorStoreSuite) TestFindByCampEmpty() {
	roster, err := s.store.FindByCamp(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(roster)
}

func (s *DonorStoreSuite) TestUpdate() {
	donor := s.newDonor("Asha", uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, donor))

	donor.Remark = "deferred, low hemoglobin"
	s.Require().NoError(s.store.Update(s.ctx, donor))

	found, err := s.store.FindByID(s.ctx, donor.ID)
	s.Require().NoError(err)
	s.Equal("deferred, low hemoglobin", found.Remark)
}

func (s *DonorStoreSuite) TestUpdateMissing() {
	err := s.store.Update(s.ctx, s.newDonor("Asha", uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorStoreSuite) TestDelete() {
	donor := s.newDonor("Asha", uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, donor))

	s.Require().NoError(s.store.Delete(s.ctx, donor.ID))

	_, err := s.store.FindByID(s.ctx, donor.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorStoreSuite) TestDeleteMissing() {
	err := s.store.Delete(s.ctx, uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *DonorStoreSuite) TestReturnsCopies() {
	donor := s.newDonor("Asha", uuid.New())
	s.Require().NoError(s.store.Create(s.ctx, donor))

	found, err := s.store.FindByID(s.ctx, donor.ID)
	s.Require().NoError(err)
	found.Name = "mutated"

	again, err := s.store.FindByID(s.ctx, donor.ID)
	s.Require().NoError(err)
	s.Equal("Asha", again.Name)
}
