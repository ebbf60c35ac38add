package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneCipherRoundTrip(t *testing.T) {
	p, err := NewPhoneCipher("unit-test-secret")
	require.NoError(t, err)

	enc, err := p.Encrypt("+15550001111")
	require.NoError(t, err)
	assert.NotEqual(t, "+15550001111", enc)

	plain, err := p.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "+15550001111", plain)

	// Nonces make ciphertexts differ between calls.
	enc2, err := p.Encrypt("+15550001111")
	require.NoError(t, err)
	assert.NotEqual(t, enc, enc2)
}

func TestPhoneCipherMissingKey(t *testing.T) {
	_, err := NewPhoneCipher("")
	assert.ErrorIs(t, err, ErrPhoneCipherKeyMissing)
}

func TestPhoneCipherWrongKey(t *testing.T) {
	a, err := NewPhoneCipher("key-a")
	require.NoError(t, err)
	b, err := NewPhoneCipher("key-b")
	require.NoError(t, err)

	enc, err := a.Encrypt("+15550001111")
	require.NoError(t, err)

	_, err = b.Decrypt(enc)
	assert.Error(t, err)
}

func TestPhoneCipherRejectsGarbage(t *testing.T) {
	p, err := NewPhoneCipher("unit-test-secret")
	require.NoError(t, err)

	_, err = p.Decrypt("not-base64!!!")
	assert.Error(t, err)

	_, err = p.Decrypt("c2hvcnQ=") // valid base64, shorter than a nonce
	assert.Error(t, err)
}
