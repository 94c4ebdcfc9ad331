package auth

import "errors"

// Authentication failure reasons. Every one of these surfaces to the caller
// as a generic 401; the distinct values exist for logs and tests.
var (
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrWrongTokenKind     = errors.New("wrong token kind")
	ErrUnknownUser        = errors.New("unknown user")
	ErrUserDeactivated    = errors.New("user deactivated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
