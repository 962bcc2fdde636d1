package account

import (
	"context"
	"time"
)

// ResetTokenValidDuration is the fixed lifetime of a password reset token.
const ResetTokenValidDuration = time.Hour

// ResetToken is an opaque single-use credential authorizing exactly one
// password change before its expiry.
type ResetToken string

func (t ResetToken) String() string {
	return "***"
}

type VerificationToken string

type TokenGenerator interface {
	GenerateResetToken() (ResetToken, error)
	GenerateVerificationToken() (VerificationToken, error)
}

type ResetTokenSender interface {
	SendResetToken(ctx context.Context, email string, token ResetToken) error
}

type VerificationTokenSender interface {
	SendVerificationToken(ctx context.Context, email string, token VerificationToken) error
}
