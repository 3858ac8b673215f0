package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/collabhub/identity-service/internal/api/metrics"
	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
)

// IdentityService resolves credentials and provider profiles to exactly one
// user record, merging provider identities onto an existing account when the
// normalized email already matches.
type IdentityService struct {
	col *Collection
}

func NewIdentityService(col *Collection) *IdentityService {
	return &IdentityService{col: col}
}

func (s *IdentityService) Register(ctx context.Context, email, password, username, phone string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := ValidatePassword(password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("weak_password").Inc()
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// TODO: decide whether phone numbers should be unique at registration;
	// only email uniqueness is enforced today.
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].Email == email {
				return nil, domain.ErrEmailTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		if err == domain.ErrEmailTaken {
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return &user, nil
}

func (s *IdentityService) LoginEmail(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return s.login(ctx, "email", password, func(u *domain.User) bool {
		return u.Email != "" && u.Email == email
	})
}

func (s *IdentityService) LoginPhone(ctx context.Context, phone, password string) (*domain.User, error) {
	phone = strings.TrimSpace(phone)
	return s.login(ctx, "phone", password, func(u *domain.User) bool {
		return u.Phone != "" && u.Phone == phone
	})
}

// login keeps "no such user" and "wrong password" indistinguishable: both
// paths return ErrInvalidCredentials with no other signal.
func (s *IdentityService) login(ctx context.Context, method, password string, match func(*domain.User) bool) (*domain.User, error) {
	var found *domain.User
	err := s.col.View(ctx, func(users []domain.User) error {
		for i := range users {
			if match(&users[i]) {
				u := users[i]
				found = &u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil || !VerifyPassword(password, found.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues(method, "denied").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues(method, "ok").Inc()
	return found, nil
}

// ResolveProvider is create-or-link and never fails with "not found".
// Match order: normalized email first, then the stored subject for the
// profile's provider. At most one write happens per call.
func (s *IdentityService) ResolveProvider(ctx context.Context, profile ports.ProviderProfile) (*domain.User, error) {
	if !domain.KnownProvider(profile.Provider) {
		return nil, domain.ErrUnknownProvider
	}
	if profile.Subject == "" {
		return nil, domain.ErrInvalidCredentials
	}
	email := domain.NormalizeEmail(profile.Email)

	var resolved domain.User
	outcome := "created"

	err := s.col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		for i := range users {
			if email != "" && users[i].Email == email {
				idx = i
				break
			}
			if users[i].ProviderID(profile.Provider) == profile.Subject {
				idx = i
				break
			}
		}

		if idx >= 0 {
			if users[idx].ProviderID(profile.Provider) == profile.Subject {
				resolved = users[idx]
				outcome = "matched"
				return nil, nil
			}
			users[idx].LinkProvider(profile.Provider, profile.Subject)
			resolved = users[idx]
			outcome = "linked"
			return users, nil
		}

		user := domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			Username:  profile.Name,
			CreatedAt: time.Now().UTC(),
		}
		user.LinkProvider(profile.Provider, profile.Subject)
		resolved = user
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ProviderResolutionsTotal.WithLabelValues(profile.Provider, outcome).Inc()
	return &resolved, nil
}
