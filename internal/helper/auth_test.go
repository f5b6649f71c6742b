package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	token, err := auth.GenerateToken(7, "u@example.com", "teacher", "jti-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "teacher", claims.Role)
	assert.Equal(t, "jti-123", claims.JTI)
}

func TestVerifyTokenBearerPrefix(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	token, err := auth.GenerateToken(7, "u@example.com", "student", "jti-123")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
	_, err = auth.VerifyToken("")
	assert.Error(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	auth := SetupAuth("secret-a")
	token, err := auth.GenerateToken(7, "u@example.com", "student", "jti-123")
	require.NoError(t, err)

	other := SetupAuth("secret-b")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenMissingInputs(t *testing.T) {
	auth := SetupAuth("s")

	_, err := auth.GenerateToken(0, "u@example.com", "student", "jti")
	assert.Error(t, err)
	_, err = auth.GenerateToken(7, "", "student", "jti")
	assert.Error(t, err)
	_, err = auth.GenerateToken(7, "u@example.com", "student", "")
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	auth := SetupAuth("s")

	_, err := auth.HashPassword("short")
	assert.Error(t, err)

	hashed, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	require.NoError(t, auth.VerifyPassword("secret1", hashed))
	assert.Error(t, auth.VerifyPassword("wrong-1", hashed))
}
