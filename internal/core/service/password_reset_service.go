package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/identity-service/internal/api/metrics"
	"github.com/collabhub/identity-service/internal/core/domain"
	"github.com/collabhub/identity-service/internal/core/ports"
)

// resetCodeTTL is the validity window of an issued reset code.
const resetCodeTTL = 15 * time.Minute

// PasswordResetService implements the reset-code issue/validate/consume
// protocol. Issuance is deliberately uniform: the caller-facing outcome never
// reveals whether the email matched a record.
type PasswordResetService struct {
	col      *Collection
	throttle ports.ResetThrottle
	queue    ports.DeliveryQueue
	log      zerolog.Logger
}

func NewPasswordResetService(col *Collection, throttle ports.ResetThrottle, queue ports.DeliveryQueue, log zerolog.Logger) *PasswordResetService {
	return &PasswordResetService{col: col, throttle: throttle, queue: queue, log: log}
}

// IssueCode generates and stores a reset code when the email matches a
// record, then hands delivery to the queue. The returned outcome is identical
// in shape whether or not the account exists.
func (s *PasswordResetService) IssueCode(ctx context.Context, email string) (ports.ResetOutcome, error) {
	email = domain.NormalizeEmail(email)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// Throttle outage must not take down password recovery.
			s.log.Warn().Err(err).Msg("reset throttle unavailable, allowing request")
		} else if !allowed {
			s.log.Info().Str("email", email).Msg("reset code request throttled")
			return ports.ResetOutcome{}, nil
		}
	}

	code, err := generateResetCode()
	if err != nil {
		return ports.ResetOutcome{}, fmt.Errorf("generate reset code: %w", err)
	}

	issued := false
	err = s.col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].Email == email {
				users[i].ResetCode = code
				users[i].ResetExpiry = time.Now().UTC().Add(resetCodeTTL)
				issued = true
				return users, nil
			}
		}
		return nil, nil
	})
	if err != nil {
		return ports.ResetOutcome{}, err
	}

	if !issued {
		return ports.ResetOutcome{}, nil
	}

	metrics.ResetCodesIssuedTotal.Inc()
	if s.queue != nil {
		s.queue.Enqueue(ports.ResetDelivery{Email: email, Code: code})
	}
	return ports.ResetOutcome{Code: code}, nil
}

// ConsumeCode validates the supplied code against the active reset window and
// swaps in the new password. The code is single-use: success clears it, and
// expiry is checked lazily here rather than swept in the background.
func (s *PasswordResetService) ConsumeCode(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if err := ValidatePassword(newPassword); err != nil {
		metrics.ResetConsumedTotal.WithLabelValues("weak_password").Inc()
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.col.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].Email != email {
				continue
			}
			if users[i].ResetCode == "" || users[i].ResetCode != code {
				return nil, domain.ErrInvalidResetCode
			}
			if time.Now().UTC().After(users[i].ResetExpiry) {
				return nil, domain.ErrExpiredResetCode
			}
			users[i].PasswordHash = hash
			users[i].ClearResetCode()
			return users, nil
		}
		return nil, domain.ErrInvalidResetCode
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidResetCode:
			metrics.ResetConsumedTotal.WithLabelValues("invalid").Inc()
		case domain.ErrExpiredResetCode:
			metrics.ResetConsumedTotal.WithLabelValues("expired").Inc()
		}
		return err
	}

	metrics.ResetConsumedTotal.WithLabelValues("ok").Inc()
	return nil
}

// generateResetCode draws a uniform 6-digit code from 100000 to 999999.
// Codes compare as strings so length is always exactly six.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
