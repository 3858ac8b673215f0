package ports

import (
	"context"

	"github.com/collabhub/identity-service/internal/core/domain"
)

// UserStore is the credential store: a durable collection of user records
// with a whole-collection load/save contract. An uninitialized backing store
// loads as an empty collection, not an error. Save replaces the entire
// collection; the store offers no isolation below that granularity.
type UserStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
}
