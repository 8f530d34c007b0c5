package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name   string
		authID string
		email  string
	}{
		{name: "professional", authID: "8a7c1e0e-auth-1", email: "pro@example.com"},
		{name: "admin", authID: "8a7c1e0e-auth-2", email: "admin@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.authID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.authID, claims.Subject)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, "authenticated", claims.Role)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("auth-1", "user@example.com")
	require.NoError(t, err)

	expired, err := NewJWTMaker(secretKey, -time.Hour).GenerateToken("auth-1", "user@example.com")
	require.NoError(t, err)

	wrongSecret, err := NewJWTMaker("wrong_secret_key", time.Hour).GenerateToken("auth-1", "user@example.com")
	require.NoError(t, err)

	noSubject, err := NewJWTMaker(secretKey, time.Hour).GenerateToken("", "user@example.com")
	require.NoError(t, err)

	noExpiry, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "auth-1"},
	}).SignedString([]byte(secretKey))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expired},
		{name: "wrong secret key", token: wrongSecret},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "missing subject", token: noSubject},
		{name: "missing expiry", token: noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_RejectsOtherAlgorithms(t *testing.T) {
	secretKey := "test_secret_key"
	maker := NewJWTMaker(secretKey, time.Hour)

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "auth-1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secretKey))
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
