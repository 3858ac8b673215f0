package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/collabhub/identity-service/internal/core/domain"
)

// SessionService mints signed session tokens from resolved identities.
// Tokens carry only the minimal user payload: id, email, username.
type SessionService struct {
	secret   string
	tokenTTL time.Duration
}

func NewSessionService(secret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{secret: secret, tokenTTL: tokenTTL}
}

func (s *SessionService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"email":    user.Email,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
