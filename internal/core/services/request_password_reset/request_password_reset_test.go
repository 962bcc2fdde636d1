package requestpasswordreset

import (
	"context"
	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"
	"jobboard/internal/core/domain/logging"
	"jobboard/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL       = "a@example.com"
	RESET_TOKEN = "cf1ab0c1b57b75a4a1ca99cca2a3295a5f317587013a5bd4f2ad5db3f6da1a35"
)

var NOW = time.Date(2022, 6, 15, 12, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger    *logging.FakeLogger
	Repo      *account.FakeRepository
	Generator *account.FakeTokenGenerator
	Sender    *account.FakeResetTokenSender
	Service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repo = account.NewFakeRepository()
	suite.Generator = account.NewFakeTokenGenerator(RESET_TOKEN, "verification-token")
	suite.Sender = account.NewFakeResetTokenSender()
	suite.Service = New(
		suite.Logger,
		suite.Repo,
		suite.Generator,
		suite.Sender,
		func() time.Time { return NOW },
	)
}

func TestRequestPasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createAccount(source account.Source, verified bool) account.Account {
	input := account.CreateAccountInput{
		Email:     c.NewEmail(EMAIL),
		Source:    source,
		CreatedAt: NOW.Add(-24 * time.Hour),
	}
	if source == account.SourceCredential {
		input.PasswordHash = c.NewOptional(account.PasswordHash("old-hash"), true)
	}
	if verified {
		input.EmailVerifiedAt = c.NewOptional(NOW.Add(-23*time.Hour), true)
	}
	a, err := suite.Repo.Create(context.Background(), input)
	suite.Require().NoError(err)
	return a
}

func (suite *testSuite) TestEligibleAccountGetsTokenAndEmail() {
	a := suite.createAccount(account.SourceCredential, true)

	result, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(account.ResetToken(RESET_TOKEN), result.Token)

	stored, err := suite.Repo.GetByEmail(context.Background(), a.Email)
	assert.NoError(err)
	assert.True(stored.ResetToken.IsPresent)
	assert.Equal(account.ResetToken(RESET_TOKEN), stored.ResetToken.Value)
	assert.True(stored.ResetTokenExpiresAt.IsPresent)
	assert.Equal(NOW.Add(time.Hour), stored.ResetTokenExpiresAt.Value)

	assert.Equal(1, suite.Sender.SentCount())
	assert.Equal(EMAIL, suite.Sender.SentTo[0])
	assert.Equal(account.ResetToken(RESET_TOKEN), suite.Sender.Sent[0])
}

func (suite *testSuite) TestUnknownEmailSucceedsWithoutSideEffects() {
	result, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail("x@nowhere.com")})

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(account.ResetToken(""), result.Token)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestUnverifiedAccountSucceedsWithoutSideEffects() {
	suite.createAccount(account.SourceCredential, false)

	result, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(account.ResetToken(""), result.Token)
	assert.Equal(0, suite.Sender.SentCount())

	stored, err := suite.Repo.GetByEmail(context.Background(), c.NewEmail(EMAIL))
	assert.NoError(err)
	assert.False(stored.ResetToken.IsPresent)
}

func (suite *testSuite) TestFederatedAccountSucceedsWithoutSideEffects() {
	suite.createAccount(account.SourceGoogle, true)

	result, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(account.ResetToken(""), result.Token)
	assert.Equal(0, suite.Sender.SentCount())
}

func (suite *testSuite) TestSecondRequestSupersedesFirstToken() {
	suite.createAccount(account.SourceCredential, true)

	_, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	suite.Require().NoError(err)

	suite.Generator.ResetToken = account.ResetToken("second-token")
	_, err = suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	suite.Require().NoError(err)

	assert := suite.Require()
	_, err = suite.Repo.GetByValidResetToken(context.Background(), account.ResetToken(RESET_TOKEN), NOW)
	assert.ErrorIs(err, account.ErrAccountDoesNotExist)

	stored, err := suite.Repo.GetByValidResetToken(context.Background(), account.ResetToken("second-token"), NOW)
	assert.NoError(err)
	assert.Equal(c.NewEmail(EMAIL), stored.Email)
	assert.Equal(2, suite.Sender.SentCount())
}

func (suite *testSuite) TestSenderFailurePropagates() {
	suite.createAccount(account.SourceCredential, true)
	suite.Sender.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	suite.Require().Error(err)
}

func (suite *testSuite) TestRepositoryFailurePropagates() {
	suite.Repo.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	suite.Require().Error(err)
}
