package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-secret-with-enough-length"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(42, "user@example.com", []string{"customer"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "reservation-engine", claims.Issuer)
	assert.False(t, claims.IsAdmin())
}

func TestTokenManager_AdminRole(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(1, "ops@example.com", []string{"admin"})
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret).GenerateAccessToken(1, "", nil)
	assert.NoError(t, err)

	claims, err := NewTokenManager("a-completely-different-signing-secret").ValidateToken(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "reservation-engine",
		},
	})
	tokenString, err := expired.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	claims, err := NewTokenManager(testSecret).ValidateToken(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
