package account

import "errors"

var (
	ErrEmailAlreadyExists         = errors.New("email already exists")
	ErrAccountDoesNotExist        = errors.New("account does not exist")
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")
	ErrInvalidVerificationToken   = errors.New("invalid verification token")
)
