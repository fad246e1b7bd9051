package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", JWTClaims{
		UserID: "u1",
		Email:  "olena@example.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "other-secret", JWTClaims{UserID: "u1"})
	_, err := ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	_, err := ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := ValidateJWT("whatever")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc123")
	assert.Error(t, err)

	_, err = ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
