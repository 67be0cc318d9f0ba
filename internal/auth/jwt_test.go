// File: internal/auth/jwt_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(42, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestGenerateJWT_RejectsZeroUserID(t *testing.T) {
	_, err := GenerateJWT(0, []byte("secret"))
	assert.Error(t, err)
}

func TestValidateToken_RejectsBadInput(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(42, secret)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ValidateToken(token, []byte("other-secret"))
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateToken("definitely.not.jwt", secret)
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ValidateToken("", secret)
		assert.Error(t, err)
	})
}
