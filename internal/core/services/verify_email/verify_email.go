package verifyemail

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
	Token account.VerificationToken
}

type Result struct {
	Account account.Account
}

type service struct {
	log               logging.Logger
	accountRepository account.Repository
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	verifiedAccount, err := s.accountRepository.VerifyEmail(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrInvalidVerificationToken) {
		s.log.Info(ctx, "Invalid email verification token.")
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.log.Info(
		ctx,
		"Account email has been verified.",
		logging.Entry("accountID", verifiedAccount.ID),
	)
	return Result{Account: verifiedAccount}, nil
}
