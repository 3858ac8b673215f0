package service

import (
	"github.com/collabhub/identity-service/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed; changing it only affects newly hashed passwords.
const bcryptCost = 12

// HashPassword derives a salted one-way digest of the plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// An empty digest (provider-only account) never matches.
func VerifyPassword(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// ValidatePassword applies the shared minimum-length rule used by both
// registration and password reset.
func ValidatePassword(plaintext string) error {
	if len(plaintext) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}
	return nil
}
