package signup

import (
	"context"
	"errors"
	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"
	e "jobboard/internal/core/domain/errors"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/core/services"
	"time"
)

type Input struct {
	Email    c.Email
	Password account.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "sign-up::" + string(i.Email)
}

type Result struct {
	Account account.Account
}

type service struct {
	log               logging.Logger
	accountRepository account.Repository
	passwordHasher    account.PasswordHasher
	tokenGenerator    account.TokenGenerator
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	passwordHasher account.PasswordHasher,
	tokenGenerator account.TokenGenerator,
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
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		tokenGenerator:    tokenGenerator,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	verificationToken, err := s.tokenGenerator.GenerateVerificationToken()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	createdAccount, err := s.accountRepository.Create(ctx, account.CreateAccountInput{
		Email:             input.Email,
		Source:            account.SourceCredential,
		PasswordHash:      c.NewOptional(passwordHash, true),
		CreatedAt:         s.now(),
		VerificationToken: c.NewOptional(verificationToken, true),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"Account with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	s.log.Info(ctx, "New account has been created.", logging.Entry("accountID", createdAccount.ID))
	return Result{Account: createdAccount}, nil
}
