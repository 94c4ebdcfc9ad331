package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

type fakeRevocations struct {
	revoked map[string]bool
}

func (f *fakeRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

type fakeUsers struct {
	users map[int64]*domain.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func newTestAuthenticator(users ...*domain.User) (*Authenticator, *fakeRevocations) {
	revocations := &fakeRevocations{revoked: make(map[string]bool)}
	source := &fakeUsers{users: make(map[int64]*domain.User)}
	for _, user := range users {
		source.users[user.ID] = user
	}
	return NewAuthenticator(newTestManager(), revocations, source), revocations
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleCandidate, IsActive: true}

	t.Run("valid access token resolves the principal", func(t *testing.T) {
		authn, _ := newTestAuthenticator(alice)
		token, _, err := authn.Tokens().Issue(1, domain.TokenKindAccess)
		require.NoError(t, err)

		user, err := authn.Authenticate(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, int64(1), user.ID)
		require.Equal(t, "alice", user.Username)
	})

	t.Run("revoked token is rejected before decode", func(t *testing.T) {
		authn, revocations := newTestAuthenticator(alice)
		token, _, err := authn.Tokens().Issue(1, domain.TokenKindAccess)
		require.NoError(t, err)
		revocations.revoked[token] = true

		_, err = authn.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("refresh token cannot authorize API calls", func(t *testing.T) {
		authn, _ := newTestAuthenticator(alice)
		token, _, err := authn.Tokens().Issue(1, domain.TokenKindRefresh)
		require.NoError(t, err)

		_, err = authn.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, ErrWrongTokenKind)
	})

	t.Run("expired token", func(t *testing.T) {
		short := NewTokenManager("test-secret", time.Nanosecond, time.Nanosecond)
		revocations := &fakeRevocations{revoked: map[string]bool{}}
		source := &fakeUsers{users: map[int64]*domain.User{1: alice}}
		authn := NewAuthenticator(short, revocations, source)

		token, _, err := short.Issue(1, domain.TokenKindAccess)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		_, err = authn.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("garbage token", func(t *testing.T) {
		authn, _ := newTestAuthenticator(alice)
		_, err := authn.Authenticate(context.Background(), "garbage")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("token for unknown user", func(t *testing.T) {
		authn, _ := newTestAuthenticator(alice)
		token, _, err := authn.Tokens().Issue(99, domain.TokenKindAccess)
		require.NoError(t, err)

		_, err = authn.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("deactivated user fails even with a valid token", func(t *testing.T) {
		inactive := &domain.User{ID: 2, Username: "bob", Role: domain.RoleExpert, IsActive: false}
		authn, _ := newTestAuthenticator(inactive)
		token, _, err := authn.Tokens().Issue(2, domain.TokenKindAccess)
		require.NoError(t, err)

		_, err = authn.Authenticate(context.Background(), token)
		require.ErrorIs(t, err, ErrUserDeactivated)
	})
}
