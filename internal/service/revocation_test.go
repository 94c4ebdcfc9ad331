package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLedger() *RevocationLedger {
	return NewRevocationLedger(newMemBlacklistRepo(), nil, zap.NewNop())
}

func TestRevocationLedger(t *testing.T) {
	t.Parallel()

	t.Run("revoked token is reported revoked", func(t *testing.T) {
		t.Parallel()
		ledger := newTestLedger()
		ctx := context.Background()

		revoked, err := ledger.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		require.False(t, revoked)

		first, err := ledger.Revoke(ctx, "token-a", 1, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.True(t, first)

		revoked, err = ledger.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("only the first revocation wins", func(t *testing.T) {
		t.Parallel()
		ledger := newTestLedger()
		ctx := context.Background()
		expiry := time.Now().Add(time.Hour)

		first, err := ledger.Revoke(ctx, "token-b", 1, expiry)
		require.NoError(t, err)
		require.True(t, first)

		second, err := ledger.Revoke(ctx, "token-b", 1, expiry)
		require.NoError(t, err)
		require.False(t, second)
	})

	t.Run("revocation is exact match", func(t *testing.T) {
		t.Parallel()
		ledger := newTestLedger()
		ctx := context.Background()

		_, err := ledger.Revoke(ctx, "token-c", 1, time.Now().Add(time.Hour))
		require.NoError(t, err)

		revoked, err := ledger.IsRevoked(ctx, "token-c2")
		require.NoError(t, err)
		require.False(t, revoked)
	})

	t.Run("prune drops only expired entries", func(t *testing.T) {
		t.Parallel()
		ledger := newTestLedger()
		ctx := context.Background()

		_, err := ledger.Revoke(ctx, "dead", 1, time.Now().Add(-time.Minute))
		require.NoError(t, err)
		_, err = ledger.Revoke(ctx, "alive", 1, time.Now().Add(time.Hour))
		require.NoError(t, err)

		pruned, err := ledger.PruneExpired(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, pruned, int64(0))

		revoked, err := ledger.IsRevoked(ctx, "alive")
		require.NoError(t, err)
		require.True(t, revoked)
	})

	t.Run("concurrent revocations of one token elect a single winner", func(t *testing.T) {
		t.Parallel()
		ledger := newTestLedger()
		ctx := context.Background()
		expiry := time.Now().Add(time.Hour)

		const attempts = 16
		results := make(chan bool, attempts)
		for i := 0; i < attempts; i++ {
			go func() {
				first, err := ledger.Revoke(ctx, "contested", 1, expiry)
				require.NoError(t, err)
				results <- first
			}()
		}

		winners := 0
		for i := 0; i < attempts; i++ {
			if <-results {
				winners++
			}
		}
		require.Equal(t, 1, winners)
	})
}
