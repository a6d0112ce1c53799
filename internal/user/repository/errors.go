package repository

import "errors"

var (
	ErrNotFound = errors.New("monitored user not found")
)
