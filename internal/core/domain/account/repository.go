package account

import (
	"context"
	c "jobboard/internal/core/domain/common"
	"time"
)

type CreateAccountInput struct {
	Email             c.Email
	Source            Source
	PasswordHash      c.Optional[PasswordHash]
	CreatedAt         time.Time
	EmailVerifiedAt   c.Optional[time.Time]
	VerificationToken c.Optional[VerificationToken]
}

type SetResetTokenInput struct {
	AccountID ID
	Token     ResetToken
	ExpiresAt time.Time
}

type ConsumeResetTokenInput struct {
	Token           ResetToken
	Now             time.Time
	NewPasswordHash PasswordHash
}

type Repository interface {
	Create(ctx context.Context, input CreateAccountInput) (Account, error)
	GetByEmail(ctx context.Context, email c.Email) (Account, error)

	// GetByValidResetToken returns the account whose stored reset token equals
	// the given one and whose expiry is strictly in the future. Exact equality,
	// no mutation.
	GetByValidResetToken(ctx context.Context, token ResetToken, now time.Time) (Account, error)

	// SetResetToken overwrites the account's reset token and its expiry as a
	// single pair, invalidating any previously issued token.
	SetResetToken(ctx context.Context, input SetResetTokenInput) error

	// ConsumeResetToken conditionally sets the new password hash and clears the
	// reset token pair in one atomic update. The condition is re-checked at
	// write time, so of two racing consumers at most one observes applied=true.
	ConsumeResetToken(ctx context.Context, input ConsumeResetTokenInput) (applied bool, err error)

	// VerifyEmail marks the account carrying the verification token as
	// verified and clears the token.
	VerifyEmail(ctx context.Context, token VerificationToken, at time.Time) (Account, error)
}
