package verifyresettoken

import (
	"context"
	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"
	"jobboard/internal/core/domain/logging"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const TOKEN = "6f3c8e1a52f94d1b8277e41c9f0b2a6354a8d7e5c1b09f3e2d4c6a8b0e1f3a5c"

var NOW = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type suite struct {
	log  *logging.FakeLogger
	repo *account.FakeRepository
	now  time.Time
}

func setupSuite() *suite {
	return &suite{
		log:  logging.NewFakeLogger(),
		repo: account.NewFakeRepository(),
		now:  NOW,
	}
}

func (s *suite) createAccountWithToken(expiresAt time.Time) {
	a, err := s.repo.Create(context.Background(), account.CreateAccountInput{
		Email:           c.NewEmail("a@example.com"),
		Source:          account.SourceCredential,
		PasswordHash:    c.NewOptional(account.PasswordHash("hash"), true),
		CreatedAt:       NOW.Add(-time.Hour),
		EmailVerifiedAt: c.NewOptional(NOW.Add(-time.Hour), true),
	})
	if err != nil {
		panic(err)
	}
	err = s.repo.SetResetToken(context.Background(), account.SetResetTokenInput{
		AccountID: a.ID,
		Token:     account.ResetToken(TOKEN),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		panic(err)
	}
}

func (s *suite) run(t *testing.T, token string) Result {
	t.Helper()
	service := New(s.log, s.repo, func() time.Time { return s.now })
	result, err := service.Run(context.Background(), Input{Token: account.ResetToken(token)})
	require.NoError(t, err)
	return result
}

func TestLiveTokenIsValid(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW.Add(time.Hour))

	result := s.run(t, TOKEN)

	require.True(t, result.IsValid)
}

func TestUnknownTokenIsInvalid(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW.Add(time.Hour))

	result := s.run(t, "unknown-token")

	require.False(t, result.IsValid)
}

func TestPrefixOfTokenIsInvalid(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW.Add(time.Hour))

	result := s.run(t, TOKEN[:len(TOKEN)-1])

	require.False(t, result.IsValid)
}

func TestExpiredTokenIsInvalid(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW.Add(time.Hour))
	s.now = NOW.Add(time.Hour + time.Second)

	result := s.run(t, TOKEN)

	require.False(t, result.IsValid)
}

func TestTokenExpiringExactlyNowIsInvalid(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW)

	result := s.run(t, TOKEN)

	require.False(t, result.IsValid)
}

func TestVerificationDoesNotMutateToken(t *testing.T) {
	s := setupSuite()
	s.createAccountWithToken(NOW.Add(time.Hour))

	first := s.run(t, TOKEN)
	second := s.run(t, TOKEN)

	require.True(t, first.IsValid)
	require.True(t, second.IsValid)
}
