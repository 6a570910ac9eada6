package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-signing-key", "tradeintel", time.Hour)

	token, err := svc.Generate("key-123", "reporting")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "key-123", claims.APIKeyID)
	assert.Equal(t, "reporting", claims.KeyName)
	assert.Equal(t, "tradeintel", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejections(t *testing.T) {
	svc := New("test-signing-key", "tradeintel", time.Hour)

	t.Run("garbage input", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := New("different-key", "tradeintel", time.Hour)
		token, err := other.Generate("key-123", "reporting")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := New("test-signing-key", "tradeintel", -time.Minute)
		token, err := expired.Generate("key-123", "reporting")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
