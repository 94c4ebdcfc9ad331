package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/repository"
)

// RevocationLedger tracks explicitly invalidated tokens. Postgres is the
// source of truth; redis mirrors entries with a TTL as a fast path for the
// per-request revocation check. Tokens are hashed before storage so a
// leaked ledger cannot be replayed as bearer credentials.
type RevocationLedger struct {
	repo   repository.BlacklistRepository
	cache  *redis.Client
	logger *zap.Logger
}

// NewRevocationLedger builds the ledger. cache may be nil.
func NewRevocationLedger(repo repository.BlacklistRepository, cache *redis.Client, logger *zap.Logger) *RevocationLedger {
	return &RevocationLedger{repo: repo, cache: cache, logger: logger}
}

// Revoke records the token as invalidated until expiresAt. It reports
// whether this call was the first to revoke the token; refresh rotation
// uses that to reject concurrent redemptions of the same token. Expired
// entries are pruned opportunistically in the same call.
func (l *RevocationLedger) Revoke(ctx context.Context, token string, userID int64, expiresAt time.Time) (bool, error) {
	hash := hashToken(token)

	first, err := l.repo.Insert(ctx, hash, userID, expiresAt)
	if err != nil {
		return false, err
	}

	if l.cache != nil {
		if ttl := time.Until(expiresAt); ttl > 0 {
			if err := l.cache.Set(ctx, revokedKey(hash), "1", ttl).Err(); err != nil {
				l.logger.Warn("failed to mirror revocation to redis", zap.Error(err))
			}
		}
	}

	// Best-effort cleanup; correctness never depends on it having run.
	if _, err := l.repo.PruneExpired(ctx); err != nil {
		l.logger.Warn("failed to prune expired blacklist entries", zap.Error(err))
	}

	return first, nil
}

// IsRevoked answers the exact-match revocation check for a presented token.
func (l *RevocationLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	hash := hashToken(token)

	if l.cache != nil {
		n, err := l.cache.Exists(ctx, revokedKey(hash)).Result()
		if err == nil && n > 0 {
			return true, nil
		}
		// cache miss or redis failure falls through to the database
	}

	return l.repo.Exists(ctx, hash)
}

// PruneExpired removes entries whose tokens have expired naturally.
func (l *RevocationLedger) PruneExpired(ctx context.Context) (int64, error) {
	return l.repo.PruneExpired(ctx)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func revokedKey(hash string) string {
	return "revoked:" + hash
}
