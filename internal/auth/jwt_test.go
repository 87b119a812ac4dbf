package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenClaims(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "dispatcher-7", "operator", time.Minute)
	require.NoError(t, err)

	claims, err := TokenClaims(secret, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, "dispatcher-7", claims["sub"])
	assert.Equal(t, "operator", claims["role"])
}

func TestTokenClaims_Rejects(t *testing.T) {
	secret := []byte("test-secret")
	expired, err := GenerateToken(secret, "u", "operator", -time.Minute)
	require.NoError(t, err)
	other, err := GenerateToken([]byte("other-secret"), "u", "operator", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "Token abc"},
		{"empty", ""},
		{"garbage", "Bearer not-a-jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokenClaims(secret, tt.header)
			assert.Error(t, err)
		})
	}
}
