package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken(42, "serveur")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "serveur", claims.Role)
	assert.Equal(t, "reservation-api", claims.Issuer)
}

func TestParseTokenGarbage(t *testing.T) {
	claims, err := ParseToken("pas-un-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Role:   "client",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("autre-secret"))
	assert.NoError(t, err)

	claims, err := ParseToken(signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseTokenExpired(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Role:   "client",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := token.SignedString(JWTSecret)
	assert.NoError(t, err)

	claims, err := ParseToken(signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
