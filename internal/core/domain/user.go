package domain

import (
	"strings"
	"time"
)

// Supported external identity providers.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderGithub   = "github"
)

// MinPasswordLength applies identically at registration and password reset.
const MinPasswordLength = 8

// User is the sole persisted entity. A single record accumulates password,
// phone, and provider credentials over time; the normalized email is the
// uniqueness key when non-empty.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-"`
	FacebookID   string    `json:"-"`
	GithubID     string    `json:"-"`
	ResetCode    string    `json:"-"`
	ResetExpiry  time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail produces the canonical form used as the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// KnownProvider reports whether name is one of the supported providers.
func KnownProvider(name string) bool {
	switch name {
	case ProviderGoogle, ProviderFacebook, ProviderGithub:
		return true
	}
	return false
}

// ProviderID returns the stored subject identifier for the given provider,
// or the empty string when no linkage exists.
func (u *User) ProviderID(provider string) string {
	switch provider {
	case ProviderGoogle:
		return u.GoogleID
	case ProviderFacebook:
		return u.FacebookID
	case ProviderGithub:
		return u.GithubID
	}
	return ""
}

// LinkProvider records the subject identifier for the given provider.
func (u *User) LinkProvider(provider, subject string) {
	switch provider {
	case ProviderGoogle:
		u.GoogleID = subject
	case ProviderFacebook:
		u.FacebookID = subject
	case ProviderGithub:
		u.GithubID = subject
	}
}

// HasActiveResetCode reports whether a reset code exists and has not yet
// expired at the given instant.
func (u *User) HasActiveResetCode(now time.Time) bool {
	return u.ResetCode != "" && !now.After(u.ResetExpiry)
}

// ClearResetCode removes any reset code state, terminal for the reset window.
func (u *User) ClearResetCode() {
	u.ResetCode = ""
	u.ResetExpiry = time.Time{}
}
