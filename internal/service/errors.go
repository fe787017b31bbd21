package service

import "errors"

var (
	// ErrUnauthorized means no resolved user identity reached the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested row does not exist for this user.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means a backing-store call failed after the single retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrConflictRetryExhausted means a concurrent write kept winning the
	// conditional update even after the retry.
	ErrConflictRetryExhausted = errors.New("conflict retry exhausted")
	// ErrInvalidInput means a request value failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
