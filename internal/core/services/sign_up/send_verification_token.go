package signup

import (
	"context"
	"errors"
	"jobboard/internal/core/domain/account"
	e "jobboard/internal/core/domain/errors"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/core/services"
)

type serviceWithVerificationTokenSending struct {
	log    logging.Logger
	sender account.VerificationTokenSender
	inner  services.Service[Input, Result]
}

func NewWithVerificationTokenSending(
	log logging.Logger,
	sender account.VerificationTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithVerificationTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithVerificationTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending verification token.", logging.Entry("err", err))
		return result, err
	}

	createdAccount := result.Account
	if !createdAccount.VerificationToken.IsPresent {
		return result, e.NewInvalidStateError("created account has no verification token")
	}

	err = s.sender.SendVerificationToken(
		ctx,
		string(createdAccount.Email),
		createdAccount.VerificationToken.Value,
	)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("accountID", createdAccount.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Verification token has been sent.",
		logging.Entry("accountID", createdAccount.ID),
	)
	return result, nil
}
