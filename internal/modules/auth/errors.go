package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrInvalidRefreshToken covers bad signature, unknown, rotated and
	// revoked tokens alike. Callers must not be able to tell which.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRefreshTokenExpired is the ledger-level expiry. Distinct for
	// logging; the HTTP boundary reports it exactly like
	// ErrInvalidRefreshToken.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
