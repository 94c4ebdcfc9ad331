package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlacklistRepository persists revoked token hashes. The UNIQUE constraint
// on token_hash makes Insert the linearization point for refresh rotation:
// of two concurrent revocations of the same token, exactly one insert wins.
type BlacklistRepository interface {
	// Insert records a revocation. It reports false when the hash was
	// already present.
	Insert(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) (bool, error)
	Exists(ctx context.Context, tokenHash string) (bool, error)
	// PruneExpired deletes entries whose tokens have died naturally.
	PruneExpired(ctx context.Context) (int64, error)
}

type blacklistRepository struct {
	pool *pgxpool.Pool
}

// NewBlacklistRepository returns a Postgres-backed implementation.
func NewBlacklistRepository(pool *pgxpool.Pool) BlacklistRepository {
	return &blacklistRepository{pool: pool}
}

func (r *blacklistRepository) Insert(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) (bool, error) {
	const query = `
        INSERT INTO blacklisted_tokens (token_hash, user_id, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (token_hash) DO NOTHING`

	cmd, err := r.pool.Exec(ctx, query, tokenHash, userID, expiresAt)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *blacklistRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token_hash=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *blacklistRepository) PruneExpired(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM blacklisted_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
