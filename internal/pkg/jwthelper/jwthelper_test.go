package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSigningKey, 42, "test-agent/1.0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSigningKey, token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test-agent/1.0", claims.UserAgent)
	assert.WithinDuration(t, time.Now().Add(tokenLifespan), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testSigningKey, 42, "test-agent/1.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("another-key"), token)

	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSigningKey, "not.a.token")

	assert.Error(t, err)
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never verify.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, signed)

	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
		UserID: 42,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSigningKey)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, signed)

	assert.Error(t, err)
}
