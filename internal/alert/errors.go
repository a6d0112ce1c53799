package alert

import "errors"

var (
	// ErrUserNotFound means the monitored user does not exist.
	ErrUserNotFound = errors.New("monitored user not found")
	// ErrMessageNotFound means the message under keyword analysis does not exist.
	ErrMessageNotFound = errors.New("conversation message not found")
	// ErrMessageUserMismatch means the message belongs to a different user.
	ErrMessageUserMismatch = errors.New("message does not belong to user")
)
