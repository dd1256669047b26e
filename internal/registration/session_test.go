package registration

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	campmodels "bloodcamp/internal/camp/models"
)

var sessionNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func campOn(name string, date time.Time) *campmodels.Camp {
	return &campmodels.Camp{ID: uuid.New(), Name: name, Date: &date}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(sessionNow, nil)
	assert.Equal(t, StateCollecting, s.State())

	require.NoError(t, s.BeginValidation())
	assert.Equal(t, StateValidating, s.State())

	require.NoError(t, s.BeginSubmit())
	assert.Equal(t, StateSubmitting, s.State())

	require.NoError(t, s.Confirm())
	assert.Equal(t, StateConfirmed, s.State())
}

func TestSessionRejectedPath(t *testing.T) {
	s := NewSession(sessionNow, nil)
	require.NoError(t, s.BeginValidation())
	require.NoError(t, s.Reject())
	assert.Equal(t, StateRejected, s.State())
}

func TestSessionFailedPath(t *testing.T) {
	s := NewSession(sessionNow, nil)
	require.NoError(t, s.BeginValidation())
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Fail())
	assert.Equal(t, StateFailed, s.State())
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := NewSession(sessionNow, nil)
	assert.Error(t, s.BeginSubmit(), "cannot submit before validating")
	assert.Error(t, s.Confirm(), "cannot confirm before submitting")
	assert.Error(t, s.Reject(), "cannot reject before validating")

	require.NoError(t, s.BeginValidation())
	require.NoError(t, s.Reject())
	assert.Error(t, s.BeginValidation(), "rejected session is terminal")
}

func TestLockCampBindsUpcomingCamp(t *testing.T) {
	camp := campOn("City Drive", sessionNow.AddDate(0, 0, 7))
	s := NewSession(sessionNow, []*campmodels.Camp{camp})

	s.LockCamp(camp.ID.String())

	require.NotNil(t, s.LockedCamp())
	assert.Equal(t, camp.ID, s.LockedCamp().ID)
	assert.Empty(t, s.Notice())
	assert.Equal(t, camp.ID.String(), s.Candidate().Camp)
}

func TestLockedCampIgnoresLaterEdits(t *testing.T) {
	camp := campOn("City Drive", sessionNow.AddDate(0, 0, 7))
	other := campOn("Village Drive", sessionNow.AddDate(0, 0, 14))
	s := NewSession(sessionNow, []*campmodels.Camp{camp, other})

	s.LockCamp(camp.ID.String())
	s.SetCamp(other.ID.String())

	assert.Equal(t, camp.ID.String(), s.Candidate().Camp)
}

func TestLockCampUnknownReferral(t *testing.T) {
	s := NewSession(sessionNow, nil)

	s.LockCamp(uuid.NewString())

	assert.Nil(t, s.LockedCamp())
	assert.Equal(t, CampUnavailableNotice, s.Notice())

	// The submitter is free to choose afterwards.
	s.SetCamp("some-other-camp")
	assert.Equal(t, "some-other-camp", s.Candidate().Camp)
}

func TestLockCampPastCamp(t *testing.T) {
	past := campOn("Finished Drive", sessionNow.AddDate(0, 0, -2))
	s := NewSession(sessionNow, []*campmodels.Camp{past})

	s.LockCamp(past.ID.String())

	assert.Nil(t, s.LockedCamp())
	assert.Equal(t, CampUnavailableNotice, s.Notice())
}

func TestLockCampMalformedReferral(t *testing.T) {
	s := NewSession(sessionNow, nil)
	s.LockCamp("not-a-uuid")
	assert.Nil(t, s.LockedCamp())
	assert.Equal(t, CampUnavailableNotice, s.Notice())
}

func TestLockCampEmptyReferral(t *testing.T) {
	s := NewSession(sessionNow, nil)
	s.LockCamp("")
	assert.Nil(t, s.LockedCamp())
	assert.Empty(t, s.Notice())
}

func TestSetDOBUpdatesAgePreview(t *testing.T) {
	s := NewSession(sessionNow, nil)

	s.SetDOB("2000-06-14")
	age, ok := s.AgePreview()
	require.True(t, ok)
	assert.Equal(t, 26, age)

	s.SetDOB("garbage")
	_, ok = s.AgePreview()
	assert.False(t, ok)
}

func TestUpcomingCampsFiltersAndSorts(t *testing.T) {
	later := campOn("Later", sessionNow.AddDate(0, 0, 30))
	sooner := campOn("Sooner", sessionNow.AddDate(0, 0, 3))
	past := campOn("Past", sessionNow.AddDate(0, 0, -1))
	dateless := &campmodels.Camp{ID: uuid.New(), Name: "Dateless"}

	s := NewSession(sessionNow, []*campmodels.Camp{later, past, dateless, sooner})

	upcoming := s.UpcomingCamps()
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Sooner", upcoming[0].Name)
	assert.Equal(t, "Later", upcoming[1].Name)
}

func TestFieldUpdatesIgnoredAfterCollecting(t *testing.T) {
	s := NewSession(sessionNow, nil)
	s.SetCamp("first")
	require.NoError(t, s.BeginValidation())

	s.SetCamp("second")
	s.SetDOB("2000-01-01")

	assert.Equal(t, "first", s.Candidate().Camp)
	assert.Empty(t, s.Candidate().DOB)
}
