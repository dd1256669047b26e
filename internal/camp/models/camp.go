package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bloodcamp/pkg/domainerrors"
)

// Camp is one scheduled blood-donation event.
//
// Invariants:
//   - Name is non-empty, unique among camps (case-insensitive), at most 128 characters
//   - Date is optional; a camp with no date is never open to registrations
//   - CreatedAt is immutable after construction
//
// A camp is "upcoming" when its date, truncated to start of day, is today or
// later. Only upcoming camps accept new donor registrations; the check is
// re-run at the moment of submission because a camp can expire between page
// load and submit.
type Camp struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Location         string     `json:"location"`
	Date             *time.Time `json:"date,omitempty"`
	OrganizerName    string     `json:"organizerName"`
	OrganizerContact string     `json:"organizerContact"`
	ProName          string     `json:"proName"`
	HospitalName     string     `json:"hospitalName"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// IsUpcoming reports whether the camp is open to new registrations at the
// given instant. Date-less camps are never upcoming.
func (c *Camp) IsUpcoming(now time.Time) bool {
	if c.Date == nil {
		return false
	}
	return !startOfDay(*c.Date).Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewCamp constructs a camp, enforcing invariants.
func NewCamp(id uuid.UUID, name string, now time.Time) (*Camp, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.New(domainerrors.CodeInvariantViolation, "camp name cannot be empty")
	}
	if len(name) > 128 {
		return nil, domainerrors.New(domainerrors.CodeInvariantViolation, "camp name must be 128 characters or less")
	}
	return &Camp{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
