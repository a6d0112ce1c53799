package repository

import "errors"

var (
	ErrNotFound = errors.New("conversation message not found")
)
