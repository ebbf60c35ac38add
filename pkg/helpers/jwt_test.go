package helpers

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("unit-test-secret", time.Hour)

	token, exp, err := m.Generate("user-1", "USER", "Ann Lee", "ann@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "Ann Lee", claims.Name)
	assert.Equal(t, "ann@example.com", claims.Email)
}

func TestJWTClaimKeys(t *testing.T) {
	// The payload key names are part of the client contract.
	m := NewJWTManager("unit-test-secret", time.Hour)
	token, _, err := m.Generate("user-1", "USER", "Ann Lee", "ann@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Contains(t, raw, "_id")
	assert.Contains(t, raw, "role")
	assert.Contains(t, raw, "name")
	assert.Contains(t, raw, "email")
	assert.Equal(t, "user-1", raw["_id"])
}

func TestJWTParseRejects(t *testing.T) {
	m := NewJWTManager("unit-test-secret", time.Hour)

	_, err := m.Parse("not-a-token")
	assert.Error(t, err)

	other := NewJWTManager("other-secret", time.Hour)
	token, _, err := other.Generate("user-1", "USER", "Ann Lee", "ann@example.com")
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.Error(t, err)

	expired := NewJWTManager("unit-test-secret", -time.Minute)
	token, _, err = expired.Generate("user-1", "USER", "Ann Lee", "ann@example.com")
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.Error(t, err)
}
