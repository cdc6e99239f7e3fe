package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccessDenied       = errors.New("access denied")
	ErrProductUnavailable = errors.New("product unavailable")
)

// ValidationError reports the first form rule violated by a submission.
// No write is attempted when a submission fails validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RateLimitError signals a checkout repeated before the minimum interval
// elapsed. RetryAfter tells the client how long to wait.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("checkout rate limited, retry after %s", e.RetryAfter)
}
