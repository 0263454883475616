// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (catch-all for unexpected storage/crypto failure).
	ErrorInternal = errors.New("internal error")

	// Codec-level error (invalid, malformed or expired signed token).
	ErrInvalidToken = errors.New("invalid token")

	// Auth flow errors. Each one maps to exactly one outward
	// message/category at the HTTP boundary.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidPurposeToken = errors.New("invalid or expired token")
)
