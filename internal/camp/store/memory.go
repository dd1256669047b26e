// Package store provides camp persistence: an in-memory implementation for
// development and tests, and a PostgreSQL implementation for production.
// Both return pkg/sentinel errors; services translate them.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bloodcamp/internal/camp/models"
	"bloodcamp/pkg/sentinel"
)

// InMemory is a mutex-guarded camp store.
type InMemory struct {
	mu    sync.RWMutex
	camps map[uuid.UUID]*models.Camp
}

func NewInMemory() *InMemory {
	return &InMemory{camps: make(map[uuid.UUID]*models.Camp)}
}

// CreateIfNameAvailable inserts the camp unless another camp already holds
// the name (case-insensitive).
func (s *InMemory) CreateIfNameAvailable(_ context.Context, camp *models.Camp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(camp.Name)
	for _, existing := range s.camps {
		if strings.ToLower(existing.Name) == lower {
			return sentinel.ErrAlreadyUsed
		}
	}

	c := *camp
	s.camps[camp.ID] = &c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	camp, ok := s.camps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *camp
	return &c, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	camps := make([]*models.Camp, 0, len(s.camps))
	for _, camp := range s.camps {
		c := *camp
		camps = append(camps, &c)
	}
	return camps, nil
}

// Update replaces the stored camp. Name uniqueness still holds against the
// other camps.
func (s *InMemory) Update(_ context.Context, camp *models.Camp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.camps[camp.ID]; !ok {
		return sentinel.ErrNotFound
	}

	lower := strings.ToLower(camp.Name)
	for id, existing := range s.camps {
		if id != camp.ID && strings.ToLower(existing.Name) == lower {
			return sentinel.ErrAlreadyUsed
		}
	}

	c := *camp
	s.camps[camp.ID] = &c
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.camps[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.camps, id)
	return nil
}
