// Package notify holds reset-code delivery channels. Actual delivery (email,
// SMS) is an external collaborator; LogSender is the stand-in that records
// the handoff.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes deliveries to the structured log. The code itself is
// emitted at debug level only, so production log levels never capture it.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendResetCode(_ context.Context, email, code string) error {
	s.log.Info().Str("email", email).Msg("password reset code dispatched")
	s.log.Debug().Str("email", email).Str("code", code).Msg("reset code value")
	return nil
}
