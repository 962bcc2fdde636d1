package resetpassword

import (
	"context"
	"errors"
	"jobboard/internal/core/domain/account"
	e "jobboard/internal/core/domain/errors"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/core/services"
	"time"
)

type Input struct {
	Token       account.ResetToken
	NewPassword account.RawPassword
}

type Result struct{}

type service struct {
	log               logging.Logger
	accountRepository account.Repository
	passwordHasher    account.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// The hash is computed unconditionally, before the token check.
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	applied, err := s.accountRepository.ConsumeResetToken(ctx, account.ConsumeResetTokenInput{
		Token:           input.Token,
		Now:             s.now(),
		NewPasswordHash: newPasswordHash,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if !applied {
		s.log.Info(ctx, "Password reset token is invalid, expired or already used.")
		return result, account.ErrInvalidOrExpiredResetToken
	}

	s.log.Info(ctx, "Password has been reset, token consumed.")
	return result, nil
}
