package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPGeneratorCode(t *testing.T) {
	g := NewOTPGenerator(6)

	code, err := g.Code(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
	}

	code, err = g.Code(10)
	require.NoError(t, err)
	assert.Len(t, code, 10)
}

func TestOTPGeneratorDefaultsDigits(t *testing.T) {
	g := NewOTPGenerator(0)
	assert.Equal(t, 6, g.Digits)

	g = NewOTPGenerator(-3)
	assert.Equal(t, 6, g.Digits)

	g = NewOTPGenerator(4)
	assert.Equal(t, 4, g.Digits)
}

func TestGenerateExpiry(t *testing.T) {
	g := NewOTPGenerator(6)

	otp, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, otp.Code, 6)
	assert.WithinDuration(t, time.Now().Add(otpTTL), otp.ExpiresAt, 2*time.Second)
}

func TestGenerateRotated(t *testing.T) {
	g := NewOTPGenerator(6)

	otp, err := g.GenerateRotated()
	require.NoError(t, err)
	assert.Len(t, otp.Code, confirmRotateLen)
	assert.WithinDuration(t, time.Now().Add(confirmRotateTTL), otp.ExpiresAt, 2*time.Second)
}
