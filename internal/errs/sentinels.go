// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist (or belongs to another user).
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates input that fails service-level validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition indicates a forbidden proof status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized indicates failed authentication (bad or expired OTP, bad token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., mobile taken).
	ErrAlreadyExists = errors.New("already exists")
)
