// Package registration coordinates a donor registration attempt: a
// per-attempt session state machine, camp locking for referral links, and
// the coordinator that validates, persists and notifies.
package registration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	campmodels "bloodcamp/internal/camp/models"
	campservice "bloodcamp/internal/camp/service"
	"bloodcamp/internal/eligibility"
)

// State names where a registration attempt is in its lifecycle.
type State string

const (
	StateCollecting State = "collecting"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateRejected   State = "rejected"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// CampUnavailableNotice is surfaced when a referral camp cannot be locked.
const CampUnavailableNotice = "The camp link you followed is no longer available. Please choose another upcoming camp."

// Session tracks one registration attempt from form open to outcome.
//
// Lifecycle: Collecting -> Validating -> (Submitting | Rejected) ->
// (Confirmed | Failed). Field updates are only accepted while Collecting.
// A session opened from a referral link consults the camp resolver once;
// a found and upcoming camp locks the binding for the rest of the session.
type Session struct {
	state      State
	openedAt   time.Time
	camps      []*campmodels.Camp
	candidate  eligibility.Candidate
	lockedCamp *campmodels.Camp
	notice     string
	agePreview int
	hasPreview bool
}

// NewSession opens a session over a snapshot of candidate camps.
func NewSession(now time.Time, camps []*campmodels.Camp) *Session {
	return &Session{state: StateCollecting, openedAt: now, camps: camps}
}

func (s *Session) State() State { return s.state }

// Camps returns the candidate camp snapshot the session was opened with.
func (s *Session) Camps() []*campmodels.Camp { return s.camps }

// UpcomingCamps returns the snapshot camps still open for registration,
// sorted ascending by date.
func (s *Session) UpcomingCamps() []*campmodels.Camp {
	var upcoming []*campmodels.Camp
	for _, camp := range s.camps {
		if camp.IsUpcoming(s.openedAt) {
			upcoming = append(upcoming, camp)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(*upcoming[j].Date)
	})
	return upcoming
}

// LockedCamp returns the referral camp binding, or nil when the submitter
// is free to choose.
func (s *Session) LockedCamp() *campmodels.Camp { return s.lockedCamp }

// Notice returns the human-readable message set when a referral camp could
// not be locked.
func (s *Session) Notice() string { return s.notice }

// AgePreview returns the informational age computed from the last dob
// update. The second return is false until a dob has parsed.
func (s *Session) AgePreview() (int, bool) { return s.agePreview, s.hasPreview }

// LockCamp resolves a referral camp reference against the session's camp
// snapshot. A found, upcoming camp locks the binding; anything else leaves
// the binding free and surfaces a notice.
func (s *Session) LockCamp(ref string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return
	}
	campID, err := uuid.Parse(ref)
	if err != nil {
		s.notice = CampUnavailableNotice
		return
	}
	camp, found := campservice.Resolve(campID, s.camps)
	if !found || !camp.IsUpcoming(s.openedAt) {
		s.notice = CampUnavailableNotice
		return
	}
	s.lockedCamp = camp
	s.candidate.Camp = camp.ID.String()
}

// SetCamp records the submitter's camp choice. Ignored when a referral
// lock is in place or the session has left Collecting.
func (s *Session) SetCamp(ref string) {
	if s.state != StateCollecting || s.lockedCamp != nil {
		return
	}
	s.candidate.Camp = strings.TrimSpace(ref)
}

// SetDOB records the date of birth and refreshes the age preview. The
// preview is informational only; Evaluate recomputes age at submit time.
func (s *Session) SetDOB(dob string) {
	if s.state != StateCollecting {
		return
	}
	s.candidate.DOB = dob
	if parsed, err := eligibility.ParseDOB(dob); err == nil {
		s.agePreview = eligibility.Age(parsed, s.openedAt)
		s.hasPreview = true
	} else {
		s.hasPreview = false
	}
}

// Apply merges the remaining candidate fields. Camp and dob keep their
// dedicated setters; Apply never overrides a locked camp.
func (s *Session) Apply(c eligibility.Candidate) {
	if s.state != StateCollecting {
		return
	}
	s.candidate.Name = c.Name
	s.candidate.Weight = c.Weight
	s.candidate.BloodGroup = c.BloodGroup
	s.candidate.Email = c.Email
	s.candidate.Phone = c.Phone
	s.candidate.Address = c.Address
	s.SetDOB(c.DOB)
	s.SetCamp(c.Camp)
}

// Candidate returns the collected form data with the locked camp binding
// applied.
func (s *Session) Candidate() eligibility.Candidate {
	c := s.candidate
	if s.lockedCamp != nil {
		c.Camp = s.lockedCamp.ID.String()
	}
	return c
}

// BeginValidation moves the session into Validating.
func (s *Session) BeginValidation() error {
	return s.transition(StateCollecting, StateValidating)
}

// Reject terminates the session after a failed validation.
func (s *Session) Reject() error {
	return s.transition(StateValidating, StateRejected)
}

// BeginSubmit moves a validated session into Submitting.
func (s *Session) BeginSubmit() error {
	return s.transition(StateValidating, StateSubmitting)
}

// Confirm terminates the session after a successful persistence call.
func (s *Session) Confirm() error {
	return s.transition(StateSubmitting, StateConfirmed)
}

// Fail terminates the session after a persistence failure.
func (s *Session) Fail() error {
	return s.transition(StateSubmitting, StateFailed)
}

func (s *Session) transition(from, to State) error {
	if s.state != from {
		return fmt.Errorf("registration session: cannot move %s -> %s", s.state, to)
	}
	s.state = to
	return nil
}
