package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
)

// Collection funnels every load-mutate-save cycle on the credential store
// through a single mutex, making find-or-create and link operations atomic
// with respect to each other. Without it two concurrent writers would each
// load a snapshot and the later save would silently drop the earlier update.
type Collection struct {
	mu    sync.Mutex
	store ports.UserStore
}

func NewCollection(store ports.UserStore) *Collection {
	return &Collection{store: store}
}

// View runs fn against a consistent snapshot of the collection. fn must not
// retain or mutate the slice beyond the call.
func (c *Collection) View(ctx context.Context, fn func(users []domain.User) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential store: %w", err)
	}
	return fn(users)
}

// Update runs fn against the current collection and persists the slice fn
// returns. Returning a nil slice with a nil error skips the save, so a
// read-only outcome costs no write.
func (c *Collection) Update(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	users, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential store: %w", err)
	}

	updated, err := fn(users)
	if err != nil {
		return err
	}
	if updated == nil {
		return nil
	}

	if err := c.store.Save(ctx, updated); err != nil {
		return fmt.Errorf("save credential store: %w", err)
	}
	return nil
}
