package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "manager", 5)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	uid, err := ParseAccessToken("test-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "manager", 5)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "manager", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", tok.Token)
	assert.Error(t, err)
}

func TestNewSecureToken(t *testing.T) {
	a, err := NewSecureToken()
	require.NoError(t, err)
	b, err := NewSecureToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
