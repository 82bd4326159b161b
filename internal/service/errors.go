package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers every login failure: unknown username,
	// unknown email, and wrong password all surface identically so callers
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidDateRange is returned when a range query's end precedes its
	// start.
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
