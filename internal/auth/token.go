package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/resume-review-service/internal/domain"
)

// TokenManager issues and decodes signed JWT access and refresh tokens. The
// secret is injected once at construction and shared read-only by all
// concurrent requests.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID int64            `json:"user_id"`
	Kind   domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token of the given kind for the user.
func (tm *TokenManager) Issue(userID int64, kind domain.TokenKind) (string, time.Time, error) {
	ttl := tm.accessTTL
	if kind == domain.TokenKindRefresh {
		ttl = tm.refreshTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// IssuePair mints a fresh access+refresh token pair for the user.
func (tm *TokenManager) IssuePair(userID int64) (*domain.TokenPair, error) {
	access, accessExp, err := tm.Issue(userID, domain.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := tm.Issue(userID, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Decode verifies the signature and returns the claims. It never consults
// any store: the result is a pure function of the token bytes and the
// secret. Failures collapse to ErrTokenExpired or ErrTokenMalformed.
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.UserID == 0 {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
