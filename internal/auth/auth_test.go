package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "secret1"))
}

func TestTokenRoundtrip(t *testing.T) {
	tok, err := MakeToken("u1", "Jane Doe", "jane@example.com", "testsecret")
	require.NoError(t, err)

	claims, err := ParseToken(tok, "testsecret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, "jane@example.com", claims.Email)

	// 4-hour expiry
	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), ttl.Seconds(), 60)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tok, err := MakeToken("u1", "Jane Doe", "jane@example.com", "testsecret")
	require.NoError(t, err)

	_, err = ParseToken(tok, "othersecret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	c := Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-5 * time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("testsecret"))
	require.NoError(t, err)

	_, err = ParseToken(tok, "testsecret")
	assert.Error(t, err)
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken("not.a.token", "testsecret")
	assert.Error(t, err)
}
