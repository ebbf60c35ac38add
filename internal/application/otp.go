package application

import (
	"crypto/rand"
	"time"

	"socialnet/internal/domain/entity"
)

const (
	// otpTTL is how long a freshly issued code stays valid.
	otpTTL = 2 * time.Minute

	// confirmRotateLen / confirmRotateTTL shape the code rotated in right
	// after a successful email confirmation.
	confirmRotateLen = 10
	confirmRotateTTL = 10 * time.Minute
)

// OTPGenerator produces numeric one-time codes. The codes gate email
// confirmation and password reset; brute force is handled by the send cap
// and expiry, not by code entropy.
type OTPGenerator struct {
	Digits int
}

func NewOTPGenerator(digits int) *OTPGenerator {
	if digits <= 0 {
		digits = 6
	}
	return &OTPGenerator{Digits: digits}
}

// Code returns a random numeric string of n digits.
func (g *OTPGenerator) Code(n int) (string, error) {
	if n <= 0 {
		n = g.Digits
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	digits := make([]byte, n)
	for i, v := range b {
		digits[i] = '0' + v%10
	}
	return string(digits), nil
}

// Generate returns a code of the configured length expiring in two minutes.
func (g *OTPGenerator) Generate() (entity.OTP, error) {
	code, err := g.Code(g.Digits)
	if err != nil {
		return entity.OTP{}, err
	}
	return entity.OTP{Code: code, ExpiresAt: time.Now().Add(otpTTL)}, nil
}

// GenerateRotated returns the longer replacement code written after a
// successful confirmation.
func (g *OTPGenerator) GenerateRotated() (entity.OTP, error) {
	code, err := g.Code(confirmRotateLen)
	if err != nil {
		return entity.OTP{}, err
	}
	return entity.OTP{Code: code, ExpiresAt: time.Now().Add(confirmRotateTTL)}, nil
}
