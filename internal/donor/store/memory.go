// Package store provides donor persistence: an in-memory implementation for
// development and tests, and a PostgreSQL implementation for production.
// Both return pkg/sentinel errors; services translate them.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bloodcamp/internal/donor/models"
	"bloodcamp/pkg/sentinel"
)

// InMemory is a mutex-guarded donor store.
type InMemory struct {
	mu     sync.RWMutex
	donors map[uuid.UUID]*models.Donor
}

func NewInMemory() *InMemory {
	return &InMemory{donors: make(map[uuid.UUID]*models.Donor)}
}

func (s *InMemory) Create(_ context.Context, donor *models.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.donors[donor.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	d := *donor
	s.donors[donor.ID] = &d
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	donor, ok := s.donors[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	d := *donor
	return &d, nil
}

// FindByCamp returns the camp roster sorted by donor name ascending.
func (s *InMemory) FindByCamp(_ context.Context, campID uuid.UUID) ([]*models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var donors []*models.Donor
	for _, donor := range s.donors {
		if donor.CampID == campID {
			d := *donor
			donors = append(donors, &d)
		}
	}
	sort.Slice(donors, func(i, j int) bool {
		return strings.ToLower(donors[i].Name) < strings.ToLower(donors[j].Name)
	})
	return donors, nil
}

func (s *InMemory) Update(_ context.Context, donor *models.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.donors[donor.ID]; !ok {
		return sentinel.ErrNotFound
	}
	d := *donor
	s.donors[donor.ID] = &d
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.donors[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.donors, id)
	return nil
}
