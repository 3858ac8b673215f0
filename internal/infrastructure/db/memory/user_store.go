// Package memory provides an in-memory credential store with the same
// load/save contract as the durable implementation. Service tests run
// against it; nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/collabhub/identity-service/internal/core/domain"
)

type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// Load returns a copy of the collection; a store that was never saved to
// loads as empty.
func (s *UserStore) Load(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Save replaces the whole collection.
func (s *UserStore) Save(_ context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make([]domain.User, len(users))
	copy(s.users, users)
	return nil
}
