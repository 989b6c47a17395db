package auth

import "errors"

// Authentication failures. Callers map these to transport status codes.
var (
	// ErrInvalidCredentials covers both an unknown identity and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInactiveAccount    = errors.New("inactive account")
)

// Token validation failures.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("malformed token")
)

// IsTokenError reports whether err is one of the token validation failures.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrExpired) || errors.Is(err, ErrMalformed)
}
