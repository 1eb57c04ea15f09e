// Package common defines shared constants and sentinel errors used across
// client and server layers of userkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("required fields missing")

	// Access gate errors. A missing credential is reported separately from
	// one that fails verification.
	ErrMissingToken = errors.New("token missing")
	ErrInvalidToken = errors.New("token invalid")

	// Startup configuration errors.
	ErrMissingSecret        = errors.New("signing secret is not configured")
	ErrUnknownHashAlgorithm = errors.New("unknown password hash algorithm")
)

