//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"bloodcamp/internal/camp/models"
	"bloodcamp/internal/camp/store"
	"bloodcamp/pkg/sentinel"
	"bloodcamp/pkg/testutil/containers"
)

type PostgresCampStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresCampStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCampStoreSuite))
}

func (s *PostgresCampStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresCampStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "donors", "camps"))
}

func newCamp(name string, date *time.Time) *models.Camp {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Camp{
		ID:        uuid.New(),
		Name:      name,
		Location:  "Town Hall",
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresCampStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	date := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	camp := newCamp("City Hall Drive", &date)

	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, camp))

	found, err := s.store.FindByID(ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal(camp.Name, found.Name)
	s.Require().NotNil(found.Date)
	s.True(found.Date.Equal(date))
}

func (s *PostgresCampStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.New())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresCampStoreSuite) TestNameUniqueCaseInsensitive() {
	ctx := context.Background()
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, newCamp("City Hall Drive", nil)))

	err := s.store.CreateIfNameAvailable(ctx, newCamp("CITY HALL DRIVE", nil))
	s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresCampStoreSuite) TestConcurrentUniqueName() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.CreateIfNameAvailable(ctx, newCamp("Contended Drive", nil))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrAlreadyUsed) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

func (s *PostgresCampStoreSuite) TestListAllOrdering() {
	ctx := context.Background()
	early := time.Now().UTC().AddDate(0, 0, 1).Truncate(time.Microsecond)
	late := time.Now().UTC().AddDate(0, 0, 30).Truncate(time.Microsecond)
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, newCamp("Later Drive", &late)))
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, newCamp("Earlier Drive", &early)))
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, newCamp("Dateless Drive", nil)))

	camps, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(camps, 3)
	s.Equal("Earlier Drive", camps[0].Name)
	s.Equal("Later Drive", camps[1].Name)
	s.Equal("Dateless Drive", camps[2].Name, "dateless camps sort last")
}

func (s *PostgresCampStoreSuite) TestUpdate() {
	ctx := context.Background()
	camp := newCamp("City Hall Drive", nil)
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, camp))

	camp.Location = "New Venue"
	camp.HospitalName = "General Hospital"
	s.Require().NoError(s.store.Update(ctx, camp))

	found, err := s.store.FindByID(ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal("New Venue", found.Location)
	s.Equal("General Hospital", found.HospitalName)
}

func (s *PostgresCampStoreSuite) TestUpdateMissing() {
	err := s.store.Update(context.Background(), newCamp("Ghost Drive", nil))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresCampStoreSuite) TestDelete() {
	ctx := context.Background()
	camp := newCamp("City Hall Drive", nil)
	s.Require().NoError(s.store.CreateIfNameAvailable(ctx, camp))

	s.Require().NoError(s.store.Delete(ctx, camp.ID))

	_, err := s.store.FindByID(ctx, camp.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(ctx, camp.ID), sentinel.ErrNotFound)
}
