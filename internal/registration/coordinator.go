package registration

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	campmodels "bloodcamp/internal/camp/models"
	campservice "bloodcamp/internal/camp/service"
	donormodels "bloodcamp/internal/donor/models"
	"bloodcamp/internal/eligibility"
	"bloodcamp/internal/notify"
	"bloodcamp/internal/registration/metrics"
	dErrors "bloodcamp/pkg/domainerrors"
	"bloodcamp/pkg/requestcontext"
)

// CampLister supplies the candidate camp set for a registration attempt.
type CampLister interface {
	ListCamps(ctx context.Context) ([]*campmodels.Camp, error)
}

// DonorStore persists accepted donors. Exactly one Create call is made per
// accepted registration; there is no automatic retry.
type DonorStore interface {
	Create(ctx context.Context, donor *donormodels.Donor) error
}

// Notifier queues a confirmation without blocking the caller.
type Notifier interface {
	Dispatch(c notify.Confirmation)
}

// Coordinator drives a registration attempt end to end: camp resolution,
// eligibility evaluation, the single persistence call, and the best-effort
// confirmation.
type Coordinator struct {
	camps    CampLister
	donors   DonorStore
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewCoordinator(camps CampLister, donors DonorStore, notifier Notifier, m *metrics.Metrics, logger *slog.Logger) *Coordinator {
	return &Coordinator{camps: camps, donors: donors, notifier: notifier, metrics: m, logger: logger}
}

// OpenSession starts a registration attempt over the current camp set. A
// non-empty referral is resolved immediately; see Session.LockCamp.
func (c *Coordinator) OpenSession(ctx context.Context, referral string) (*Session, error) {
	now := requestcontext.Now(ctx)
	camps, err := c.camps.ListCamps(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error loading camps")
	}
	session := NewSession(now, camps)
	session.LockCamp(referral)
	return session, nil
}

// Register validates a candidate and persists the donor. Client-side checks
// are never trusted; this is the sole correctness boundary.
func (c *Coordinator) Register(ctx context.Context, candidate eligibility.Candidate) (*donormodels.Donor, error) {
	start := time.Now()
	now := requestcontext.Now(ctx)

	camps, err := c.camps.ListCamps(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error creating donor")
	}

	session := NewSession(now, camps)
	session.Apply(candidate)
	if err := session.BeginValidation(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error creating donor")
	}

	profile, err := eligibility.Evaluate(session.Candidate(), now)
	if err != nil {
		return nil, c.reject(session, err)
	}

	// A camp can stop being upcoming between page load and submit, so
	// availability is re-checked here.
	camp, found := campservice.Resolve(profile.CampID, camps)
	if !found {
		rejection := &eligibility.RejectionError{
			Reason:  eligibility.ReasonInvalidCampReference,
			Field:   "camp",
			Message: "Referenced camp not found",
		}
		return nil, c.reject(session, rejection)
	}
	if !camp.IsUpcoming(now) {
		rejection := &eligibility.RejectionError{
			Reason:  eligibility.ReasonInvalidCampReference,
			Field:   "camp",
			Message: "Selected camp is no longer upcoming. Please choose another camp.",
		}
		return nil, c.reject(session, rejection)
	}

	if err := session.BeginSubmit(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error creating donor")
	}

	donor := donormodels.FromProfile(uuid.New(), profile, now)
	if err := c.donors.Create(ctx, donor); err != nil {
		_ = session.Fail()
		c.logger.Error("donor persistence failed", "camp_id", camp.ID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Server error creating donor")
	}
	_ = session.Confirm()

	if c.metrics != nil {
		c.metrics.IncrementAccepted()
		c.metrics.ObserveSubmit(start)
	}
	c.logger.Info("donor registered", "donor_id", donor.ID, "camp_id", camp.ID)

	c.notifier.Dispatch(notify.Confirmation{
		DonorName:    donor.Name,
		Email:        donor.Email,
		Age:          donor.Age,
		WeightKg:     donor.WeightKg,
		BloodGroup:   string(donor.BloodGroup),
		Phone:        donor.Phone,
		Address:      donor.Address,
		CampName:     camp.Name,
		RegisteredAt: donor.CreatedAt,
	})

	return donor, nil
}

// reject records the rejection and translates it to a coded error carrying
// the rule's own message.
func (c *Coordinator) reject(session *Session, err error) error {
	_ = session.Reject()
	var rejection *eligibility.RejectionError
	if errors.As(err, &rejection) {
		if c.metrics != nil {
			c.metrics.IncrementRejected(string(rejection.Reason))
		}
		return dErrors.New(dErrors.CodeValidation, rejection.Message)
	}
	return dErrors.Wrap(err, dErrors.CodeValidation, "registration rejected")
}
