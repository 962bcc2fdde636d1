package verifyresettoken

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
	Token account.ResetToken
}

// Result deliberately carries no account data: the predicate must not leak
// who the token belongs to.
type Result struct {
	IsValid bool
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
	_, err = s.accountRepository.GetByValidResetToken(ctx, input.Token, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		return Result{IsValid: false}, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	return Result{IsValid: true}, nil
}
