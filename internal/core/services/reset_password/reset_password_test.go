package resetpassword

import (
	"context"
	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/core/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL = "a@example.com"
	TOKEN = "3d4b8f1c9a2e7650b4c8d1e5f2a39687c0d4e8f1b5a29384d6c0e7f1a2b3c4d5"
)

var NOW = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger  *logging.FakeLogger
	Repo    *account.FakeRepository
	Hasher  *account.FakePasswordHasher
	Service services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repo = account.NewFakeRepository()
	suite.Hasher = account.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.Repo,
		suite.Hasher,
		func() time.Time { return NOW },
	)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createAccountWithToken(expiresAt time.Time) account.Account {
	oldHash, err := suite.Hasher.HashPassword(account.RawPassword("old-password"))
	suite.Require().NoError(err)

	a, err := suite.Repo.Create(context.Background(), account.CreateAccountInput{
		Email:           c.NewEmail(EMAIL),
		Source:          account.SourceCredential,
		PasswordHash:    c.NewOptional(oldHash, true),
		CreatedAt:       NOW.Add(-time.Hour),
		EmailVerifiedAt: c.NewOptional(NOW.Add(-time.Hour), true),
	})
	suite.Require().NoError(err)

	err = suite.Repo.SetResetToken(context.Background(), account.SetResetTokenInput{
		AccountID: a.ID,
		Token:     account.ResetToken(TOKEN),
		ExpiresAt: expiresAt,
	})
	suite.Require().NoError(err)
	return a
}

func (suite *testSuite) TestLiveTokenConsumedAndPasswordChanged() {
	suite.createAccountWithToken(NOW.Add(30 * time.Minute))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:       account.ResetToken(TOKEN),
		NewPassword: account.RawPassword("NewPass123!"),
	})

	assert := suite.Require()
	assert.NoError(err)

	stored, err := suite.Repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.NoError(err)
	assert.True(suite.Hasher.ValidatePassword(account.RawPassword("NewPass123!"), stored.PasswordHash.Value))
	assert.False(stored.ResetToken.IsPresent)
	assert.False(stored.ResetTokenExpiresAt.IsPresent)
}

func (suite *testSuite) TestReplayFailsAndKeepsFirstPassword() {
	suite.createAccountWithToken(NOW.Add(30 * time.Minute))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:       account.ResetToken(TOKEN),
		NewPassword: account.RawPassword("first-password"),
	})
	suite.Require().NoError(err)

	_, err = suite.Service.Run(context.Background(), Input{
		Token:       account.ResetToken(TOKEN),
		NewPassword: account.RawPassword("second-password"),
	})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrInvalidOrExpiredResetToken)

	stored, err := suite.Repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.NoError(err)
	assert.True(suite.Hasher.ValidatePassword(account.RawPassword("first-password"), stored.PasswordHash.Value))
}

func (suite *testSuite) TestExpiredTokenFails() {
	suite.createAccountWithToken(NOW.Add(-time.Second))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:       account.ResetToken(TOKEN),
		NewPassword: account.RawPassword("NewPass123!"),
	})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrInvalidOrExpiredResetToken)

	stored, err := suite.Repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.NoError(err)
	assert.True(suite.Hasher.ValidatePassword(account.RawPassword("old-password"), stored.PasswordHash.Value))
}

func (suite *testSuite) TestUnknownTokenFails() {
	suite.createAccountWithToken(NOW.Add(30 * time.Minute))

	_, err := suite.Service.Run(context.Background(), Input{
		Token:       account.ResetToken("unknown-token"),
		NewPassword: account.RawPassword("NewPass123!"),
	})

	suite.Require().ErrorIs(err, account.ErrInvalidOrExpiredResetToken)
}

func (suite *testSuite) TestConcurrentConsumersExactlyOneWins() {
	suite.createAccountWithToken(NOW.Add(30 * time.Minute))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	passwords := []account.RawPassword{"racer-one", "racer-two"}
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = suite.Service.Run(context.Background(), Input{
				Token:       account.ResetToken(TOKEN),
				NewPassword: passwords[i],
			})
		}()
	}
	wg.Wait()

	assert := suite.Require()
	successCount := 0
	winner := -1
	for i, err := range errs {
		if err == nil {
			successCount++
			winner = i
		} else {
			assert.ErrorIs(err, account.ErrInvalidOrExpiredResetToken)
		}
	}
	assert.Equal(1, successCount)

	stored, err := suite.Repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.NoError(err)
	assert.True(suite.Hasher.ValidatePassword(passwords[winner], stored.PasswordHash.Value))
}
