package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-1", "ada")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-1", "ada")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.GenerateToken("user-1", "ada")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}
