package helpers

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// PhoneCipher reversibly encrypts phone numbers with a key derived from the
// configured secret. Ciphertexts are base64 so they can live in a text
// column.
type PhoneCipher struct {
	aead cipher.AEAD
}

var ErrPhoneCipherKeyMissing = errors.New("phone encryption key is missing")

// NewPhoneCipher derives a 256-bit key from the secret. An empty secret is
// an error so callers can surface the missing-key condition explicitly.
func NewPhoneCipher(secret string) (*PhoneCipher, error) {
	if secret == "" {
		return nil, ErrPhoneCipherKeyMissing
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &PhoneCipher{aead: aead}, nil
}

func (p *PhoneCipher) Encrypt(plain string) (string, error) {
	nonce := make([]byte, p.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := p.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (p *PhoneCipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	if len(raw) < p.aead.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ct := raw[:p.aead.NonceSize()], raw[p.aead.NonceSize():]
	plain, err := p.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
