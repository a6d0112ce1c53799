package notification

import (
	"errors"
	"fmt"

	"carewatch/internal/model"
)

var (
	ErrChannelUnavailable = errors.New("notification channel unavailable")
	ErrNoFallback         = errors.New("no fallback channel configured")
)

// Error is a delivery failure with retry semantics attached. The retry
// wrapper re-attempts only errors marked retryable; everything else fails
// fast to the fallback path.
type Error struct {
	Channel   model.NotificationChannelType
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	kind := "permanent"
	if e.Retryable {
		kind = "retryable"
	}
	return fmt.Sprintf("notification %s error on %s: %v", kind, e.Channel, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewRetryableError wraps a transient delivery failure.
func NewRetryableError(channel model.NotificationChannelType, err error) *Error {
	return &Error{Channel: channel, Retryable: true, Err: err}
}

// NewPermanentError wraps a failure that retrying cannot fix.
func NewPermanentError(channel model.NotificationChannelType, err error) *Error {
	return &Error{Channel: channel, Retryable: false, Err: err}
}

// IsRetryable reports whether err carries retryable delivery semantics.
// Unknown errors default to retryable so transient faults are not dropped.
func IsRetryable(err error) bool {
	var nErr *Error
	if errors.As(err, &nErr) {
		return nErr.Retryable
	}
	return err != nil
}
