package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// retryBackoff is the pause before the single retry of a failed store call.
var retryBackoff = 100 * time.Millisecond

// withStoreRetry runs op and retries it exactly once after a short backoff
// when it fails with a transient store error. Domain outcomes (not-found,
// validation) pass through untouched; a second failure is classified as a
// write conflict or a store outage.
func withStoreRetry(op func() error) error {
	err := op()
	if err == nil || isDomainError(err) {
		return err
	}
	time.Sleep(retryBackoff)
	if err = op(); err == nil || isDomainError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%v: %w", err, ErrConflictRetryExhausted)
	}
	return fmt.Errorf("%v: %w", err, ErrStoreUnavailable)
}

func isDomainError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized)
}
