package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khadamati-server/config"
	"khadamati-server/types"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestAccessTokenRoundtrip(t *testing.T) {
	setupJWTConfig(t)
	js := NewJWTService()

	tokenString, expiresIn, err := js.generateAccessToken(42, "provider")
	require.NoError(t, err)
	assert.Equal(t, int64(24*3600), expiresIn)

	claims, err := js.ValidateAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "provider", claims.Role)
	assert.Equal(t, "khadamati-server", claims.Issuer)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	setupJWTConfig(t)
	js := NewJWTService()

	tokenString, _, err := js.generateAccessToken(42, "customer")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "a-different-secret"
	_, err = js.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsUnsignedToken(t *testing.T) {
	setupJWTConfig(t)
	js := NewJWTService()

	claims := &types.Claims{
		UserID: 42,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = js.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsExpiredToken(t *testing.T) {
	setupJWTConfig(t)
	js := NewJWTService()

	claims := &types.Claims{
		UserID: 42,
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.AppConfig.JWT.Secret))
	require.NoError(t, err)

	_, err = js.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}
