package requestpasswordreset

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
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + string(i.Email)
}

// Result is empty for ineligible requests on purpose: the caller must not be
// able to tell an unknown, unverified or federated account from an eligible
// one. Token is only set on the eligible path and is surfaced to clients
// exclusively in test mode.
type Result struct {
	Token account.ResetToken
}

type service struct {
	log               logging.Logger
	accountRepository account.Repository
	tokenGenerator    account.TokenGenerator
	tokenSender       account.ResetTokenSender
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.Repository,
	tokenGenerator account.TokenGenerator,
	tokenSender account.ResetTokenSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenGenerator:    tokenGenerator,
		tokenSender:       tokenSender,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email, skipping.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	if !a.CanResetPassword() {
		s.log.Info(
			ctx,
			"Account is not eligible for password reset, skipping.",
			logging.Entry("accountID", a.ID),
			logging.Entry("source", a.Source),
			logging.Entry("isVerified", a.IsVerified()),
		)
		return result, nil
	}

	token, err := s.tokenGenerator.GenerateResetToken()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountID", a.ID))
		return result, err
	}
	expiresAt := s.now().Add(account.ResetTokenValidDuration)

	err = s.accountRepository.SetResetToken(ctx, account.SetResetTokenInput{
		AccountID: a.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountID", a.ID))
		return result, err
	}

	err = s.tokenSender.SendResetToken(ctx, string(a.Email), token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountID", a.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued and sent.",
		logging.Entry("accountID", a.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{Token: token}, nil
}
