package tokengenerator

import (
	"crypto/rand"
	"encoding/hex"
	"jobboard/internal/core/domain/account"
)

// Reset tokens substitute for a session, so they carry 256 bits of entropy.
// Verification tokens gate a much weaker capability and use half of that.
const (
	resetTokenBytes        = 32
	verificationTokenBytes = 16
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() (account.ResetToken, error) {
	token, err := randomHex(resetTokenBytes)
	if err != nil {
		return "", err
	}
	return account.ResetToken(token), nil
}

func (g *Generator) GenerateVerificationToken() (account.VerificationToken, error) {
	token, err := randomHex(verificationTokenBytes)
	if err != nil {
		return "", err
	}
	return account.VerificationToken(token), nil
}

func randomHex(byteLength int) (string, error) {
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
