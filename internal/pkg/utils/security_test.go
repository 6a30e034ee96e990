package utils

import (
	"testing"
	"time"

	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJWT(t *testing.T) {
	claims := SessionTokenClaims{
		Secret:   "test-secret",
		Issuer:   "intake.example.com",
		Audience: "intake-app",
	}

	t.Run("round trip returns the session id", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", claims, time.Now().Add(time.Hour))
		require.NoError(t, err)

		sessionID, err := ParseSessionJWT(token, claims)
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", claims, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = ParseSessionJWT(token, claims)
		assert.Error(t, err)
		assert.Equal(t, constvars.AuthCodeSessionRequired, exceptions.Code(err))
	})

	t.Run("token from another app is rejected", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", claims, time.Now().Add(time.Hour))
		require.NoError(t, err)

		other := claims
		other.Audience = "another-app"
		_, err = ParseSessionJWT(token, other)
		assert.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", claims, time.Now().Add(time.Hour))
		require.NoError(t, err)

		other := claims
		other.Secret = "other-secret"
		_, err = ParseSessionJWT(token, other)
		assert.Error(t, err)
	})
}

func TestResetPasswordJWT(t *testing.T) {
	token, err := GenerateResetPasswordJWT("reset-uuid", "secret", time.Minute)
	require.NoError(t, err)

	uuid, err := ParseResetPasswordJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "reset-uuid", uuid)

	_, err = ParseResetPasswordJWT("garbage", "secret")
	assert.Equal(t, constvars.AuthCodeInvalidResetToken, exceptions.Code(err))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}
