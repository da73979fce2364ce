package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryList(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown jti is not revoked", func(t *testing.T) {
		l := NewInMemoryList()
		revoked, err := l.IsRevoked(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked jti stays revoked until expiry", func(t *testing.T) {
		l := NewInMemoryList()
		require.NoError(t, l.Revoke(ctx, "jti-1", time.Hour))

		revoked, err := l.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("entry expires with its ttl", func(t *testing.T) {
		l := NewInMemoryList()
		require.NoError(t, l.Revoke(ctx, "jti-2", time.Nanosecond))
		time.Sleep(time.Millisecond)

		revoked, err := l.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("empty jti and non-positive ttl are no-ops", func(t *testing.T) {
		l := NewInMemoryList()
		require.NoError(t, l.Revoke(ctx, "", time.Hour))
		require.NoError(t, l.Revoke(ctx, "jti-3", 0))

		revoked, err := l.IsRevoked(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = l.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
