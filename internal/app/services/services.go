package services

import (
	"jobboard/internal/app/deps"
	drl "jobboard/internal/core/domain/rate_limiter"
	"jobboard/internal/core/services"
	ratelimiting "jobboard/internal/core/services/rate_limiting"
	requestpasswordreset "jobboard/internal/core/services/request_password_reset"
	resetpassword "jobboard/internal/core/services/reset_password"
	signup "jobboard/internal/core/services/sign_up"
	verifyemail "jobboard/internal/core/services/verify_email"
	verifyresettoken "jobboard/internal/core/services/verify_reset_token"
)

type Services struct {
	SignUp               services.Service[signup.Input, signup.Result]
	VerifyEmail          services.Service[verifyemail.Input, verifyemail.Result]
	RequestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	VerifyResetToken     services.Service[verifyresettoken.Input, verifyresettoken.Result]
	ResetPassword        services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		signup.NewWithVerificationTokenSending(
			deps.Logger,
			deps.VerificationTokenSender,
			signup.New(
				deps.Logger,
				deps.AccountRepository,
				deps.PasswordHasher,
				deps.TokenGenerator,
				deps.Now,
			),
		),
	)
	s.VerifyEmail = verifyemail.New(
		deps.Logger,
		deps.AccountRepository,
		deps.Now,
	)
	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestpasswordreset.New(
			deps.Logger,
			deps.AccountRepository,
			deps.TokenGenerator,
			deps.ResetTokenSender,
			deps.Now,
		),
	)
	s.VerifyResetToken = verifyresettoken.New(
		deps.Logger,
		deps.AccountRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.AccountRepository,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
