package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowstore/backend/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	config.JWTSecret = []byte("test_secret")

	token, err := GenerateToken("admin-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.ID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	config.JWTSecret = []byte("test_secret")
	token, err := GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	config.JWTSecret = []byte("rotated_secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.JWTSecret = []byte("test_secret")
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
