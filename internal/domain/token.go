package domain

import "time"

// TokenKind differentiates access vs refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// BlacklistedToken is a revocation ledger entry. Tokens are stored as a
// SHA-256 hash; ExpiresAt is copied from the token's own expiry so entries
// can be pruned once the token would have died naturally anyway.
type BlacklistedToken struct {
	ID            int64
	TokenHash     string
	UserID        int64
	BlacklistedAt time.Time
	ExpiresAt     time.Time
}
