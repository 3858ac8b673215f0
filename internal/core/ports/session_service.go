package ports

import "github.com/collabhub/identity-service/internal/core/domain"

// SessionService turns a resolved identity into an authenticated session
// token carrying only the minimal user payload (id, email, username).
type SessionService interface {
	Issue(user *domain.User) (string, error)
}
