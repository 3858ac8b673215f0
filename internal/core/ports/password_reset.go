package ports

import "context"

// ResetOutcome is the uniform result of a reset-code request. Code is set
// only when a code was actually issued and is surfaced exclusively through
// non-production diagnostics; the caller-facing acknowledgment never varies
// with account existence.
type ResetOutcome struct {
	Code string
}

// PasswordResetService owns the reset-code issue/validate/consume protocol.
type PasswordResetService interface {
	IssueCode(ctx context.Context, email string) (ResetOutcome, error)
	ConsumeCode(ctx context.Context, email, code, newPassword string) error
}

// ResetDelivery is a queued request to deliver a reset code to its recipient.
type ResetDelivery struct {
	Email string
	Code  string
}

// DeliveryQueue accepts reset-code deliveries for asynchronous dispatch.
type DeliveryQueue interface {
	Enqueue(job ResetDelivery)
}

// CodeSender delivers a reset code over an external channel.
type CodeSender interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// ResetThrottle bounds how often codes may be issued for a single email.
type ResetThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}
