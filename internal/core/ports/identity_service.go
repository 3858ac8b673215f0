package ports

import (
	"context"

	"github.com/collabhub/identity-service/internal/core/domain"
)

// ProviderProfile is the verified profile handed over after an external
// OAuth handshake. The handshake itself happens upstream; only its outcome
// enters the resolver.
type ProviderProfile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// IdentityService resolves inbound credentials or provider profiles to
// exactly one user record.
type IdentityService interface {
	Register(ctx context.Context, email, password, username, phone string) (*domain.User, error)
	LoginEmail(ctx context.Context, email, password string) (*domain.User, error)
	LoginPhone(ctx context.Context, phone, password string) (*domain.User, error)
	ResolveProvider(ctx context.Context, profile ProviderProfile) (*domain.User, error)
}
