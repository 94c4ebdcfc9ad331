package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

// RevocationChecker answers whether a token string has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// UserSource resolves a user id to its current record.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator evaluates a raw bearer token into a live principal. Each
// call is self-contained; shared state is reached only through the
// revocation checker and the user source.
type Authenticator struct {
	tokens  *TokenManager
	revoked RevocationChecker
	users   UserSource
}

// NewAuthenticator constructs the authenticator.
func NewAuthenticator(tokens *TokenManager, revoked RevocationChecker, users UserSource) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked, users: users}
}

// Authenticate validates the token and resolves the principal. The checks
// run in a fixed order: revocation, signature/structure, kind, expiry,
// user existence, active flag. Any failure is terminal for the request.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	revoked, err := a.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := a.tokens.Decode(token)
	if err != nil {
		return nil, err
	}

	if claims.Kind != domain.TokenKindAccess {
		return nil, ErrWrongTokenKind
	}

	// The codec already rejects expired tokens; this guards against clock
	// drift between decode and use.
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDeactivated
	}

	return user, nil
}

// Tokens exposes the underlying token manager.
func (a *Authenticator) Tokens() *TokenManager {
	return a.tokens
}
