package repository

import "errors"

var (
	ErrNotFound = errors.New("alert record not found")
	// ErrDuplicateAlert means this rule already produced an alert for the
	// same user and date. Callers treat it as "already alerted", not a fault.
	ErrDuplicateAlert = errors.New("duplicate alert for user, rule and date")
)
