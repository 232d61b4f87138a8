package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("round-trip-secret", time.Hour)

	token, err := GenerateToken("user-1", "dreamer@example.com", "dreamer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "dreamer@example.com", claims.Email)
	assert.Equal(t, "dreamer", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	Init("secret-a", time.Hour)
	token, err := GenerateToken("user-1", "a@example.com", "dreamer")
	require.NoError(t, err)

	Init("secret-b", time.Hour)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	Init("expiry-secret", time.Millisecond)
	token, err := GenerateToken("user-1", "a@example.com", "dreamer")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	Init("garbage-secret", time.Hour)

	for _, in := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := ParseToken(in)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
