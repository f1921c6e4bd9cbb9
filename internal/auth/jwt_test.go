package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)

	t.Run("round trip keeps the role claim", func(t *testing.T) {
		token, err := manager.GenerateAccessToken("user-1", "lecturer@campus.edu", "lecturer")
		require.NoError(t, err)

		claims, err := manager.ParseAndValidate(token)
		require.NoError(t, err)

		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "lecturer@campus.edu", claims.Email)
		assert.Equal(t, "lecturer", claims.Role)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Minute)
		token, err := other.GenerateAccessToken("user-1", "a@b.c", "student")
		require.NoError(t, err)

		_, err = manager.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken("user-1", "a@b.c", "student")
		require.NoError(t, err)

		_, err = manager.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.ParseAndValidate("not-a-token")
		assert.Error(t, err)
	})
}
