package repository

import "errors"

var (
	ErrNotFound = errors.New("notification record not found")
)
