package account

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "jobboard/internal/core/domain/common"
	"sync"
	"time"
)

type FakeRepository struct {
	Accounts    []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateAccountInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create account %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, a := range r.Accounts {
		if a.Email == input.Email {
			return a, ErrEmailAlreadyExists
		}
		maxID = a.ID
	}
	a = Account{
		ID:                maxID + 1,
		Email:             input.Email,
		Source:            input.Source,
		PasswordHash:      input.PasswordHash,
		CreatedAt:         input.CreatedAt,
		EmailVerifiedAt:   input.EmailVerifiedAt,
		VerificationToken: input.VerificationToken,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeRepository) GetByEmail(ctx context.Context, email c.Email) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeRepository) GetByValidResetToken(
	ctx context.Context,
	token ResetToken,
	now time.Time,
) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account by reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if r.tokenIsLive(a, token, now) {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeRepository) SetResetToken(ctx context.Context, input SetResetTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.ID == input.AccountID {
			r.Accounts[ix].ResetToken = c.NewOptional(input.Token, true)
			r.Accounts[ix].ResetTokenExpiresAt = c.NewOptional(input.ExpiresAt, true)
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

func (r *FakeRepository) ConsumeResetToken(
	ctx context.Context,
	input ConsumeResetTokenInput,
) (applied bool, err error) {
	if r.ReturnError {
		return false, fmt.Errorf("could not consume reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if r.tokenIsLive(a, input.Token, input.Now) {
			r.Accounts[ix].PasswordHash = c.NewOptional(input.NewPasswordHash, true)
			r.Accounts[ix].ResetToken = c.NewOptional(ResetToken(""), false)
			r.Accounts[ix].ResetTokenExpiresAt = c.NewOptional(time.Time{}, false)
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeRepository) VerifyEmail(
	ctx context.Context,
	token VerificationToken,
	at time.Time,
) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not verify email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if !a.IsVerified() && a.VerificationToken.IsPresent && a.VerificationToken.Value == token {
			r.Accounts[ix].EmailVerifiedAt = c.NewOptional(at, true)
			r.Accounts[ix].VerificationToken = c.NewOptional(VerificationToken(""), false)
			return r.Accounts[ix], nil
		}
	}
	return a, ErrInvalidVerificationToken
}

func (r *FakeRepository) tokenIsLive(a Account, token ResetToken, now time.Time) bool {
	return a.ResetToken.IsPresent &&
		a.ResetToken.Value == token &&
		a.ResetTokenExpiresAt.IsPresent &&
		now.Before(a.ResetTokenExpiresAt.Value)
}

type FakeTokenGenerator struct {
	ResetToken        ResetToken
	VerificationToken VerificationToken
	ReturnError       bool
}

func NewFakeTokenGenerator(resetToken string, verificationToken string) *FakeTokenGenerator {
	return &FakeTokenGenerator{
		ResetToken:        ResetToken(resetToken),
		VerificationToken: VerificationToken(verificationToken),
	}
}

func (g *FakeTokenGenerator) GenerateResetToken() (ResetToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate reset token")
	}
	return g.ResetToken, nil
}

func (g *FakeTokenGenerator) GenerateVerificationToken() (VerificationToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate verification token")
	}
	return g.VerificationToken, nil
}

type FakeResetTokenSender struct {
	Sent        []ResetToken
	SentTo      []string
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenSender() *FakeResetTokenSender {
	return &FakeResetTokenSender{}
}

func (s *FakeResetTokenSender) SendResetToken(ctx context.Context, email string, token ResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, email)
	return nil
}

func (s *FakeResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeVerificationTokenSender struct {
	Sent        []VerificationToken
	SentTo      []string
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeVerificationTokenSender() *FakeVerificationTokenSender {
	return &FakeVerificationTokenSender{}
}

func (s *FakeVerificationTokenSender) SendVerificationToken(
	ctx context.Context,
	email string,
	token VerificationToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send verification token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, email)
	return nil
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}
