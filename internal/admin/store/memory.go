// Package store provides admin persistence. Lookups are by lowercased
// email; both implementations return pkg/sentinel errors.
package store

import (
	"context"
	"strings"
	"sync"

	"bloodcamp/internal/admin/models"
	"bloodcamp/pkg/sentinel"
)

// InMemory is a mutex-guarded admin store.
type InMemory struct {
	mu     sync.RWMutex
	admins map[string]*models.Admin
}

func NewInMemory() *InMemory {
	return &InMemory{admins: make(map[string]*models.Admin)}
}

func (s *InMemory) Create(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(admin.Email)
	if _, ok := s.admins[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	a := *admin
	s.admins[key] = &a
	return nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admin, ok := s.admins[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	a := *admin
	return &a, nil
}
