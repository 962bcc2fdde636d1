package account

import (
	"fmt"
	c "jobboard/internal/core/domain/common"
	e "jobboard/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// Source tells how the account was created. Accounts coming from a federated
// identity provider have no local password and cannot go through the reset flow.
type Source string

const (
	SourceCredential Source = "CREDENTIAL"
	SourceGoogle     Source = "GOOGLE"
)

type Account struct {
	ID                  ID
	Email               c.Email
	Source              Source
	PasswordHash        c.Optional[PasswordHash]
	CreatedAt           time.Time
	EmailVerifiedAt     c.Optional[time.Time]
	VerificationToken   c.Optional[VerificationToken]
	ResetToken          c.Optional[ResetToken]
	ResetTokenExpiresAt c.Optional[time.Time]
}

func (a *Account) Validate() error {
	if a.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for account %d", a.ID))
	}
	if a.Source == SourceCredential && !a.PasswordHash.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for credential account %d", a.ID))
	}
	if a.ResetToken.IsPresent != a.ResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("reset token and its expiry are out of sync for account %d", a.ID))
	}
	return nil
}

func (a *Account) IsVerified() bool {
	return a.EmailVerifiedAt.IsPresent
}

// CanResetPassword reports reset eligibility: the account must be verified
// and own a local password.
func (a *Account) CanResetPassword() bool {
	return a.IsVerified() && a.Source == SourceCredential
}
