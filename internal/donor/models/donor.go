package models

import (
	"time"

	"github.com/google/uuid"

	"bloodcamp/internal/eligibility"
)

// Donor is one person registered at one camp.
//
// Invariants:
//   - Age is computed from DOB at acceptance time, never trusted from input
//   - WeightKg passed the minimum-weight gate at acceptance time
//   - CampID resolved to an existing, upcoming camp at the moment of acceptance
//
// Donors are created only through the registration coordinator after
// eligibility passes. Identity and camp binding are immutable to the donor
// afterwards; only administrative updates touch the record. Re-registration
// by the same person creates a new record - there are no merge semantics.
type Donor struct {
	ID         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	DOB        time.Time              `json:"dob"`
	Age        int                    `json:"age"`
	WeightKg   float64                `json:"weight"`
	BloodGroup eligibility.BloodGroup `json:"bloodGroup"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	Address    string                 `json:"address"`
	CampID     uuid.UUID              `json:"camp"`
	Remark     string                 `json:"remark"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// FromProfile builds the persistent record from an accepted eligibility
// profile.
func FromProfile(id uuid.UUID, p *eligibility.Profile, now time.Time) *Donor {
	return &Donor{
		ID:         id,
		Name:       p.Name,
		DOB:        p.DOB,
		Age:        p.Age,
		WeightKg:   p.WeightKg,
		BloodGroup: p.BloodGroup,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		CampID:     p.CampID,
		Remark:     "",
		CreatedAt:  now,
	}
}
